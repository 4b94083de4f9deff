// Пакет service — бизнес-логика Content Service.
//
// Content Service stateless: между вызовами не хранится никакого
// состояния кроме кэша неизменяемых метаданных постов. Любые два
// экземпляра на одном бэкенде дают эквивалентные результаты
// (с точностью до окна консистентности DFS).
//
// Сервис не ретраит ошибки хранилища — ретраи выполняет DFS-клиент,
// сюда ошибки поднимаются уже после исчерпания его бюджета.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/gofeedstore/internal/content/domain/model"
	"github.com/bigkaa/gofeedstore/internal/content/storage"
)

// ErrPostNotFound — комментарий ссылается на несуществующий пост.
var ErrPostNotFound = errors.New("пост не найден")

// Prometheus-метрики Content Service.
var (
	postsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cs_posts_created_total",
		Help: "Общее количество созданных постов.",
	})
	commentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cs_comments_created_total",
		Help: "Общее количество созданных комментариев.",
	})
)

// ContentService — операции создания и чтения постов и комментариев.
type ContentService struct {
	store  storage.ObjectStore
	cache  *PostCache
	logger *slog.Logger
}

// NewContentService создаёт сервис контента.
// cache может быть nil — проверка существования поста пойдёт в хранилище.
func NewContentService(store storage.ObjectStore, cache *PostCache, logger *slog.Logger) *ContentService {
	return &ContentService{
		store:  store,
		cache:  cache,
		logger: logger.With(slog.String("component", "content_service")),
	}
}

// CreatePost создаёт пост и записывает его в DFS с tier hot
// (свежий контент latency-чувствителен).
// Два поста с одинаковыми автором и текстом — два разных поста:
// дедупликации при создании нет.
func (s *ContentService) CreatePost(ctx context.Context, author, content string) (*model.Post, error) {
	post := &model.Post{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(post)
	if err != nil {
		return nil, fmt.Errorf("сериализация поста: %w", err)
	}

	if err := s.store.Put(ctx, storage.PostKey(post.ID), payload, storage.TierHot); err != nil {
		return nil, fmt.Errorf("запись поста %s: %w", post.ID, err)
	}

	postsCreatedTotal.Inc()
	s.logger.Info("Пост создан",
		slog.String("post_id", post.ID),
		slog.String("author", post.Author),
	)
	return post, nil
}

// CreateComment создаёт комментарий к существующему посту.
// Существование поста проверяется единожды — read-before-write;
// при отсутствии поста возвращается ErrPostNotFound и в хранилище
// ничего не записывается.
func (s *ContentService) CreateComment(ctx context.Context, postID, author, content string) (*model.Comment, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(comment)
	if err != nil {
		return nil, fmt.Errorf("сериализация комментария: %w", err)
	}

	if err := s.store.Put(ctx, storage.CommentKey(postID, comment.ID), payload, storage.TierHot); err != nil {
		return nil, fmt.Errorf("запись комментария %s: %w", comment.ID, err)
	}

	commentsCreatedTotal.Inc()
	s.logger.Info("Комментарий создан",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
	)
	return comment, nil
}

// ListPostsWithComments возвращает все посты с их комментариями.
//
// Порядок документирован и стабилен: посты — от новых к старым по created_at
// (при равенстве — по id по возрастанию), комментарии внутри поста — от
// старых к новым (при равенстве — по id). Каждый вызов перечитывает текущее
// состояние бэкенда, без кэширования: корректность важнее латентности.
func (s *ContentService) ListPostsWithComments(ctx context.Context) ([]model.PostWithComments, error) {
	keys, err := s.store.List(ctx, storage.PostsPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing постов: %w", err)
	}

	result := make([]model.PostWithComments, 0, len(keys))
	for _, key := range keys {
		payload, err := s.store.Get(ctx, key)
		if err != nil {
			// Объект исчез между list и get (окно консистентности) — пропускаем
			if errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("Пост из listing не найден при чтении", slog.String("key", key))
				continue
			}
			return nil, fmt.Errorf("чтение поста %s: %w", key, err)
		}

		var post model.Post
		if err := json.Unmarshal(payload, &post); err != nil {
			s.logger.Error("Некорректный JSON поста",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}

		comments, err := s.ListComments(ctx, post.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, model.PostWithComments{Post: post, Comments: comments})
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// ListComments возвращает комментарии поста от старых к новым.
// Все комментарии поста лежат под одним префиксом — один listing на пост.
func (s *ContentService) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	keys, err := s.store.List(ctx, storage.CommentPrefix(postID))
	if err != nil {
		return nil, fmt.Errorf("listing комментариев поста %s: %w", postID, err)
	}

	comments := make([]model.Comment, 0, len(keys))
	for _, key := range keys {
		payload, err := s.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("чтение комментария %s: %w", key, err)
		}

		var comment model.Comment
		if err := json.Unmarshal(payload, &comment); err != nil {
			s.logger.Error("Некорректный JSON комментария",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		comments = append(comments, comment)
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

// PostExists сообщает, существует ли пост. Используется обработчиком
// listing комментариев для различения пустого поста и отсутствующего.
func (s *ContentService) PostExists(ctx context.Context, postID string) (bool, error) {
	_, err := s.getPost(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// getPost возвращает пост по id: сначала кэш, затем хранилище.
// Отсутствие поста → ErrPostNotFound.
func (s *ContentService) getPost(ctx context.Context, postID string) (*model.Post, error) {
	if s.cache != nil {
		if post, ok := s.cache.Get(postID); ok {
			return post, nil
		}
	}

	payload, err := s.store.Get(ctx, storage.PostKey(postID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("чтение поста %s: %w", postID, err)
	}

	var post model.Post
	if err := json.Unmarshal(payload, &post); err != nil {
		return nil, fmt.Errorf("некорректный JSON поста %s: %w", postID, err)
	}

	if s.cache != nil {
		s.cache.Set(postID, &post)
	}
	return &post, nil
}
