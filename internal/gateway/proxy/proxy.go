// Пакет proxy — форвардинг запросов на экземпляры Content Service
// с одним ретраем.
//
// Forwarder не является прозрачным reverse proxy: тело запроса читается
// целиком заранее (оно нужно для повторной отправки при ретрае), ответ
// тоже буферизуется. Для тел постов и комментариев это приемлемо.
package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/gofeedstore/internal/gateway/pool"
)

// Ошибки форвардинга.
var (
	// ErrNoHealthyInstances — здоровых экземпляров нет, запрос не отправлялся.
	ErrNoHealthyInstances = errors.New("нет здоровых экземпляров Content Service")
	// ErrUpstreamFailure — обе попытки (исходная и ретрай) завершились сбоем.
	ErrUpstreamFailure = errors.New("сбой upstream после ретрая")
)

// Prometheus-метрики форвардинга.
var (
	forwardsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gw_forwards_total",
		Help: "Количество форвардингов (по экземпляру и результату).",
	}, []string{"instance", "result"}) // result: ok, fail

	forwardRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gw_forward_retries_total",
		Help: "Количество ретраев форвардинга.",
	})

	upstreamFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gw_upstream_failures_total",
		Help: "Количество запросов, завершившихся сбоем после ретрая.",
	})

	forwardDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gw_forward_duration_seconds",
		Help:    "Полная длительность форвардинга (включая ретрай).",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
	})
)

// Result — буферизованный ответ upstream.
type Result struct {
	StatusCode  int
	Body        []byte
	ContentType string
	// Instance — экземпляр, ответивший на запрос.
	Instance string
}

// Forwarder пересылает запросы на здоровые экземпляры из pool.
type Forwarder struct {
	pool       *pool.Pool
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// New создаёт Forwarder. timeout — на одну попытку, не на запрос целиком.
func New(p *pool.Pool, timeout time.Duration, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		pool: p,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 32,
			},
			// Редиректам не следуем: ответ upstream оценивается как есть
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: timeout,
		logger:  logger.With(slog.String("component", "forwarder")),
	}
}

// Do пересылает запрос на следующий здоровый экземпляр.
//
// Сбой попытки (транспортная ошибка или любой ответ кроме 2xx/4xx)
// фиксируется в pool
// и даёт ровно один ретрай — на другом здоровом экземпляре, если он есть.
// Ответы 4xx сбоем экземпляра не считаются и возвращаются клиенту как есть.
func (f *Forwarder) Do(ctx context.Context, method, path string, body []byte, contentType string) (*Result, error) {
	start := time.Now()
	defer func() {
		forwardDuration.Observe(time.Since(start).Seconds())
	}()

	first, ok := f.pool.Next()
	if !ok {
		return nil, ErrNoHealthyInstances
	}

	res, err := f.attempt(ctx, first, method, path, body, contentType)
	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		// Клиент отменил запрос — ретрай не нужен
		return nil, err
	}

	f.logger.Warn("Сбой форвардинга, ретрай",
		slog.String("instance", first),
		slog.String("method", method),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
	forwardRetriesTotal.Inc()

	second, ok := f.pool.NextExcluding(first)
	if !ok {
		upstreamFailuresTotal.Inc()
		return nil, ErrUpstreamFailure
	}

	res, err = f.attempt(ctx, second, method, path, body, contentType)
	if err != nil {
		upstreamFailuresTotal.Inc()
		f.logger.Error("Сбой форвардинга после ретрая",
			slog.String("instance", second),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %s", ErrUpstreamFailure, err)
	}
	return res, nil
}

// attempt выполняет одну попытку и фиксирует её исход в pool.
func (f *Forwarder) attempt(ctx context.Context, instance, method, path string, body []byte, contentType string) (*Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var reqBody io.Reader = http.NoBody
	if len(body) > 0 {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, instance+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("создание запроса: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.pool.MarkFailure(instance)
		forwardsTotal.WithLabelValues(instance, "fail").Inc()
		return nil, fmt.Errorf("запрос к %s: %w", instance, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		f.pool.MarkFailure(instance)
		forwardsTotal.WithLabelValues(instance, "fail").Inc()
		return nil, fmt.Errorf("чтение ответа %s: %w", instance, err)
	}

	// Успех попытки — только 2xx и 4xx: 4xx — ошибка клиента, её вернёт
	// любой экземпляр. Всё остальное (5xx, неожиданные 3xx/1xx) — сбой
	// экземпляра: Content Service редиректов не выдаёт.
	ok := (resp.StatusCode >= 200 && resp.StatusCode < 300) ||
		(resp.StatusCode >= 400 && resp.StatusCode < 500)
	if !ok {
		f.pool.MarkFailure(instance)
		forwardsTotal.WithLabelValues(instance, "fail").Inc()
		return nil, fmt.Errorf("экземпляр %s ответил %d", instance, resp.StatusCode)
	}

	f.pool.MarkSuccess(instance)
	forwardsTotal.WithLabelValues(instance, "ok").Inc()

	return &Result{
		StatusCode:  resp.StatusCode,
		Body:        respBody,
		ContentType: resp.Header.Get("Content-Type"),
		Instance:    instance,
	}, nil
}
