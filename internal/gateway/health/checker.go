// Пакет health — фоновый цикл liveness probe экземпляров Content Service.
//
// Checker опрашивает каждый сконфигурированный экземпляр независимо от
// трафика запросов: probe каждые GW_HEALTH_INTERVAL с таймаутом
// GW_HEALTH_TIMEOUT. Переходы состояний выполняет pool: порог подряд
// идущих сбоев для ухода в unhealthy, один успех для возврата.
// Цикл живёт всё время жизни процесса Gateway.
package health

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/gofeedstore/internal/gateway/pool"
)

// Prometheus-метрики health check.
var (
	probesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gw_probes_total",
		Help: "Количество liveness probe (по экземпляру и результату).",
	}, []string{"instance", "result"}) // result: ok, fail

	probeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gw_probe_duration_seconds",
		Help:    "Длительность liveness probe.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	}, []string{"instance"})
)

// Checker — фоновый цикл health check.
type Checker struct {
	pool       *pool.Pool
	httpClient *http.Client
	interval   time.Duration
	timeout    time.Duration
	probePath  string
	logger     *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// New создаёт health checker.
// probePath — путь liveness probe на экземпляре (по умолчанию /health/live).
func New(p *pool.Pool, interval, timeout time.Duration, probePath string, logger *slog.Logger) *Checker {
	return &Checker{
		pool: p,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
			},
		},
		interval:  interval,
		timeout:   timeout,
		probePath: probePath,
		logger:    logger.With(slog.String("component", "health_checker")),
	}
}

// Start запускает фоновую горутину health check.
func (c *Checker) Start(ctx context.Context) {
	checkCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(checkCtx)

	c.logger.Info("Health check запущен",
		slog.String("interval", c.interval.String()),
		slog.String("timeout", c.timeout.String()),
		slog.Int("instances", len(c.pool.URLs())),
	)
}

// Stop останавливает фоновый цикл и ждёт завершения.
func (c *Checker) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.done != nil {
		<-c.done
	}
	c.logger.Info("Health check остановлен")
}

// run — основной цикл фоновой горутины.
func (c *Checker) run(ctx context.Context) {
	defer close(c.done)

	// Первый проход — сразу при запуске
	c.probeAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.probeAll(ctx)
		}
	}
}

// probeAll опрашивает все экземпляры параллельно и ждёт завершения прохода.
func (c *Checker) probeAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, url := range c.pool.URLs() {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			c.probeOne(ctx, url)
		}(url)
	}
	wg.Wait()
}

// probeOne выполняет один liveness probe и фиксирует результат в pool.
func (c *Checker) probeOne(ctx context.Context, url string) {
	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	ok := c.probe(probeCtx, url)
	probeDuration.WithLabelValues(url).Observe(time.Since(start).Seconds())

	if ctx.Err() != nil {
		// Остановка Gateway — не результат probe
		return
	}

	if ok {
		probesTotal.WithLabelValues(url, "ok").Inc()
	} else {
		probesTotal.WithLabelValues(url, "fail").Inc()
		c.logger.Debug("Liveness probe не прошёл", slog.String("instance", url))
	}
	c.pool.ObserveProbe(url, ok)
}

// probe выполняет GET {url}{probePath}; успех — статус 2xx.
func (c *Checker) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+c.probePath, http.NoBody)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
