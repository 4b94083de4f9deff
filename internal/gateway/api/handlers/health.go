// health.go — диагностический endpoint Gateway.
// /health — таблица здоровья экземпляров Content Service
// /metrics — Prometheus метрики
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/gofeedstore/internal/gateway/api/generated"
	"github.com/bigkaa/gofeedstore/internal/gateway/config"
	"github.com/bigkaa/gofeedstore/internal/gateway/pool"
)

// HealthHandler — обработчик диагностических endpoints.
type HealthHandler struct {
	pool        *pool.Pool
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик диагностики.
func NewHealthHandler(p *pool.Pool) *HealthHandler {
	return &HealthHandler{
		pool:        p,
		promHandler: promhttp.Handler(),
	}
}

// Health возвращает состояние Gateway и таблицу экземпляров.
// 200 — хотя бы один здоровый экземпляр, 503 — здоровых нет.
// Endpoint диагностический: отдаёт полную картину, а не только итог.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	snapshot := h.pool.Snapshot()
	healthy := h.pool.HealthyCount()

	resp := generated.HealthStatus{
		Status:           "ok",
		Timestamp:        time.Now().UTC(),
		Version:          config.Version,
		Service:          "gateway",
		HealthyInstances: healthy,
		TotalInstances:   len(snapshot),
		Instances:        instancesToAPI(snapshot),
	}

	code := http.StatusOK
	if healthy == 0 {
		resp.Status = "fail"
		code = http.StatusServiceUnavailable
	} else if healthy < len(snapshot) {
		resp.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// instancesToAPI конвертирует снимок таблицы здоровья в типы контракта.
func instancesToAPI(snapshot []pool.InstanceStatus) []generated.InstanceStatus {
	out := make([]generated.InstanceStatus, 0, len(snapshot))
	for _, s := range snapshot {
		out = append(out, generated.InstanceStatus{
			Url:                 s.URL,
			State:               string(s.State),
			ConsecutiveFailures: s.ConsecutiveFailures,
			LastChecked:         s.LastChecked,
		})
	}
	return out
}
