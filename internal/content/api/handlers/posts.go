// posts.go — обработчики постов и комментариев Content Service.
//
// Отображение ошибок на HTTP-статусы (по одному статусу на вид отказа):
//   ErrPostNotFound / storage.ErrNotFound → 404 NOT_FOUND
//   storage.ErrWriteFailed               → 502 STORAGE_WRITE_ERROR
//   storage.ErrUnavailable               → 502 STORAGE_UNAVAILABLE
//   прочее                               → 500 INTERNAL_ERROR
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/gofeedstore/internal/content/api/errors"
	"github.com/bigkaa/gofeedstore/internal/content/api/generated"
	"github.com/bigkaa/gofeedstore/internal/content/domain/model"
	"github.com/bigkaa/gofeedstore/internal/content/service"
	"github.com/bigkaa/gofeedstore/internal/content/storage"
)

// CreatePost — POST /posts. Создаёт пост, возвращает 201 + созданный пост.
func (h *APIHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCreateRequest(w, r)
	if !ok {
		return
	}

	post, err := h.svc.CreatePost(r.Context(), req.Author, req.Content)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, postToAPI(post))
}

// ListPosts — GET /posts. Возвращает все посты с комментариями.
// Каждый вызов перечитывает текущее состояние бэкенда.
func (h *APIHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPostsWithComments(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generated.ListPostsResponse{
		Posts:      postsWithCommentsToAPI(posts),
		TotalCount: len(posts),
	})
}

// CreateComment — POST /posts/{postID}/comments.
// 404, если пост не существует; при отказе ничего не записывается.
func (h *APIHandler) CreateComment(w http.ResponseWriter, r *http.Request, postID generated.PostID) {
	req, ok := decodeCreateRequest(w, r)
	if !ok {
		return
	}

	comment, err := h.svc.CreateComment(r.Context(), postID, req.Author, req.Content)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentToAPI(comment))
}

// ListComments — GET /posts/{postID}/comments.
// 404, если пост не существует; пустой список — валидный ответ.
func (h *APIHandler) ListComments(w http.ResponseWriter, r *http.Request, postID generated.PostID) {
	exists, err := h.svc.PostExists(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !exists {
		apierrors.NotFound(w, "пост "+postID+" не найден")
		return
	}

	comments, err := h.svc.ListComments(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generated.ListCommentsResponse{
		PostId:   postID,
		Comments: commentsToAPI(comments),
	})
}

// decodeCreateRequest разбирает и валидирует тело создания.
// При ошибке пишет 400 и возвращает ok=false.
func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (generated.CreateRequest, bool) {
	var req generated.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "некорректный JSON в теле запроса")
		return generated.CreateRequest{}, false
	}
	if req.Author == "" || req.Content == "" {
		apierrors.ValidationError(w, "поля author и content обязательны")
		return generated.CreateRequest{}, false
	}
	return req, true
}

// writeServiceError отображает ошибку сервисного слоя на HTTP-ответ.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, storage.ErrNotFound):
		apierrors.NotFound(w, "пост не найден")
	case errors.Is(err, storage.ErrWriteFailed):
		apierrors.StorageWriteError(w, "запись в хранилище не подтверждена")
	case errors.Is(err, storage.ErrUnavailable):
		apierrors.StorageUnavailable(w, "хранилище недоступно")
	default:
		h.logger.Error("Внутренняя ошибка обработчика", slog.String("error", err.Error()))
		apierrors.InternalError(w, "внутренняя ошибка")
	}
}

// Конвертация доменных моделей в типы контракта.

func postToAPI(p *model.Post) generated.Post {
	return generated.Post{
		Id:        p.ID,
		Author:    p.Author,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

func commentToAPI(c *model.Comment) generated.Comment {
	return generated.Comment{
		Id:        c.ID,
		PostId:    c.PostID,
		Author:    c.Author,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func commentsToAPI(comments []model.Comment) []generated.Comment {
	out := make([]generated.Comment, 0, len(comments))
	for i := range comments {
		out = append(out, commentToAPI(&comments[i]))
	}
	return out
}

func postsWithCommentsToAPI(posts []model.PostWithComments) []generated.PostWithComments {
	out := make([]generated.PostWithComments, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		out = append(out, generated.PostWithComments{
			Id:        p.ID,
			Author:    p.Author,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			Comments:  commentsToAPI(p.Comments),
		})
	}
	return out
}
