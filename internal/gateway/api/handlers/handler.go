// handler.go — основной обработчик API Gateway.
// Реализует generated.ServerInterface: бизнес-запросы пересылаются
// на Content Service через Forwarder, диагностика обслуживается на месте.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/gofeedstore/internal/gateway/api/generated"
	"github.com/bigkaa/gofeedstore/internal/gateway/proxy"
)

// Проверка соответствия контракту на этапе компиляции.
var _ generated.ServerInterface = (*APIHandler)(nil)

// APIHandler — основной обработчик API Gateway.
// Все бизнес-маршруты пересылаются на Content Service через Forwarder;
// собственной бизнес-логики у Gateway нет.
type APIHandler struct {
	forwarder *proxy.Forwarder
	health    *HealthHandler
	logger    *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	forwarder *proxy.Forwarder,
	health *HealthHandler,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		forwarder: forwarder,
		health:    health,
		logger:    logger.With(slog.String("component", "api_handler")),
	}
}

// Health — состояние Gateway и таблица экземпляров Content Service.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.health.Health(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// ListPosts — GET /posts, форвардинг на Content Service.
func (h *APIHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	h.Forward(w, r)
}

// CreatePost — POST /posts, форвардинг на Content Service.
func (h *APIHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	h.Forward(w, r)
}

// ListComments — GET /posts/{postID}/comments, форвардинг на Content Service.
// postID не интерпретируется: путь пересылается как есть.
func (h *APIHandler) ListComments(w http.ResponseWriter, r *http.Request, _ generated.PostID) {
	h.Forward(w, r)
}

// CreateComment — POST /posts/{postID}/comments, форвардинг на Content Service.
func (h *APIHandler) CreateComment(w http.ResponseWriter, r *http.Request, _ generated.PostID) {
	h.Forward(w, r)
}
