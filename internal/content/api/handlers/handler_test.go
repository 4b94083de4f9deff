package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/gofeedstore/internal/content/api/generated"
	"github.com/bigkaa/gofeedstore/internal/content/domain/model"
	"github.com/bigkaa/gofeedstore/internal/content/service"
	"github.com/bigkaa/gofeedstore/internal/content/storage"
	"github.com/bigkaa/gofeedstore/internal/content/storage/memstore"
)

// okChecker — readiness-заглушка для тестов.
type okChecker struct{}

func (okChecker) CheckReady() (string, string) { return "ok", "" }

// newTestRouter собирает роутер Content Service поверх memstore.
// Маршруты, как и в production, регистрируются из OpenAPI-контракта.
func newTestRouter(t *testing.T) (http.Handler, *memstore.Store) {
	t.Helper()

	store := memstore.New(storage.DefaultReplicationPolicy())
	svc := service.NewContentService(store, nil, slog.Default())
	handler := NewAPIHandler(svc, NewHealthHandler(okChecker{}), slog.Default())

	return generated.HandlerFromMux(handler, chi.NewRouter()), store
}

// doJSON выполняет запрос с JSON-телом и возвращает recorder.
func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestCreatePost проверяет 201 и тело созданного поста.
func TestCreatePost(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/posts",
		map[string]string{"author": "alice", "content": "hello"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, ожидался 201: %s", rec.Code, rec.Body.String())
	}

	var post model.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("разбор ответа: %v", err)
	}
	if post.ID == "" || post.Author != "alice" || post.Content != "hello" {
		t.Errorf("post = %+v", post)
	}
}

// TestCreatePost_Validation проверяет 400 при отсутствии обязательных полей.
func TestCreatePost_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/posts", map[string]string{"author": "alice"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, ожидался 400", rec.Code)
	}

	rec = doJSON(router, http.MethodPost, "/posts", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, ожидался 400 (пустое тело)", rec.Code)
	}
}

// TestCreateComment_PostMissing проверяет 404 и отсутствие записи в хранилище.
func TestCreateComment_PostMissing(t *testing.T) {
	router, store := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/posts/no-such-post/comments",
		map[string]string{"author": "bob", "content": "hi"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, ожидался 404", rec.Code)
	}
	if store.Count() != 0 {
		t.Errorf("объектов = %d, при 404 ничего не должно записываться", store.Count())
	}
}

// TestListPosts_Scenario проверяет сквозной сценарий через HTTP-поверхность.
func TestListPosts_Scenario(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/posts",
		map[string]string{"author": "alice", "content": "hello"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("создание поста: status = %d", rec.Code)
	}
	var post model.Post
	_ = json.Unmarshal(rec.Body.Bytes(), &post)

	rec = doJSON(router, http.MethodPost, "/posts/"+post.ID+"/comments",
		map[string]string{"author": "bob", "content": "hi alice"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("создание комментария: status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodGet, "/posts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("listing: status = %d", rec.Code)
	}

	var resp struct {
		Posts      []model.PostWithComments `json:"posts"`
		TotalCount int                      `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("разбор ответа: %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Posts) != 1 {
		t.Fatalf("total_count = %d, posts = %d, ожидался 1", resp.TotalCount, len(resp.Posts))
	}
	if len(resp.Posts[0].Comments) != 1 || resp.Posts[0].Comments[0].Author != "bob" {
		t.Errorf("comments = %+v, ожидался комментарий bob", resp.Posts[0].Comments)
	}
}

// TestListComments проверяет per-post listing и 404 для отсутствующего поста.
func TestListComments(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/posts",
		map[string]string{"author": "alice", "content": "hello"})
	var post model.Post
	_ = json.Unmarshal(rec.Body.Bytes(), &post)

	// Пустой пост — 200 с пустым списком
	rec = doJSON(router, http.MethodGet, "/posts/"+post.ID+"/comments", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, ожидался 200", rec.Code)
	}
	var resp struct {
		PostID   string          `json:"post_id"`
		Comments []model.Comment `json:"comments"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.PostID != post.ID || len(resp.Comments) != 0 {
		t.Errorf("resp = %+v, ожидался пустой список комментариев", resp)
	}

	// Отсутствующий пост — 404
	rec = doJSON(router, http.MethodGet, "/posts/no-such-post/comments", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, ожидался 404", rec.Code)
	}
}

// TestHealthLive проверяет liveness probe.
func TestHealthLive(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, ожидался 200", rec.Code)
	}
}

// failChecker — readiness-заглушка с отказом.
type failChecker struct{}

func (failChecker) CheckReady() (string, string) { return "fail", "namenode недоступен" }

// TestHealthReady_Fail проверяет 503 при недоступном DFS.
func TestHealthReady_Fail(t *testing.T) {
	store := memstore.New(storage.DefaultReplicationPolicy())
	svc := service.NewContentService(store, nil, slog.Default())
	handler := NewAPIHandler(svc, NewHealthHandler(failChecker{}), slog.Default())

	router := generated.HandlerFromMux(handler, chi.NewRouter())

	rec := doJSON(router, http.MethodGet, "/health/ready", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, ожидался 503", rec.Code)
	}
}

// TestEmbeddedContract проверяет, что встроенный OpenAPI-контракт валиден
// и описывает все обслуживаемые маршруты.
func TestEmbeddedContract(t *testing.T) {
	swagger, err := generated.GetSwagger()
	if err != nil {
		t.Fatalf("GetSwagger ошибка: %v", err)
	}
	if swagger.Info.Title != "Content Service API" {
		t.Errorf("title = %q", swagger.Info.Title)
	}
	for _, p := range []string{
		"/health/live", "/health/ready", "/metrics",
		"/posts", "/posts/{postID}/comments",
	} {
		if swagger.Paths.Find(p) == nil {
			t.Errorf("путь %s отсутствует в контракте", p)
		}
	}
}
