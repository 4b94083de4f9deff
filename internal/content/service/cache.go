// cache.go — LRU-кэш метаданных постов с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
//
// Кэш используется только проверкой существования поста при создании
// комментария: посты неизменяемы, удаление — вне ядра, поэтому
// закэшированный пост не может устареть. Путь listing кэш не использует —
// каждый вызов перечитывает состояние бэкенда.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/gofeedstore/internal/content/domain/model"
)

// Prometheus-метрики кэша постов.
var (
	postCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cs_post_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш метаданных постов.",
	})
	postCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cs_post_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша метаданных постов.",
	})
)

// PostCache — LRU-кэш метаданных постов с автоматическим TTL.
// Каждый экземпляр Content Service имеет собственный in-memory кэш
// (per-instance, stateless архитектура).
type PostCache struct {
	cache *expirable.LRU[string, *model.Post]
}

// NewPostCache создаёт LRU-кэш с указанным максимальным размером и TTL.
func NewPostCache(maxSize int, ttl time.Duration) *PostCache {
	cache := expirable.NewLRU[string, *model.Post](maxSize, nil, ttl)
	return &PostCache{cache: cache}
}

// Get возвращает пост из кэша по postID.
// Возвращает (пост, true) при hit или (nil, false) при miss.
func (c *PostCache) Get(postID string) (*model.Post, bool) {
	val, ok := c.cache.Get(postID)
	if ok {
		postCacheHitsTotal.Inc()
		return val, true
	}
	postCacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет пост в кэш.
func (c *PostCache) Set(postID string, post *model.Post) {
	c.cache.Add(postID, post)
}
