// handler.go — основной обработчик API Content Service.
// Реализует generated.ServerInterface: бизнес-запросы делегирует
// в сервисный слой, health endpoints — в HealthHandler.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bigkaa/gofeedstore/internal/content/api/generated"
	"github.com/bigkaa/gofeedstore/internal/content/service"
)

// Проверка соответствия контракту на этапе компиляции.
var _ generated.ServerInterface = (*APIHandler)(nil)

// APIHandler — основной обработчик API Content Service.
// Делегирует запросы в сервисный слой.
type APIHandler struct {
	svc    *service.ContentService
	health *HealthHandler
	logger *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	svc *service.ContentService,
	health *HealthHandler,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		svc:    svc,
		health: health,
		logger: logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe, используется probe Gateway и Kubernetes.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (DFS namenode доступен).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
