// Пакет dfsclient — HTTP-клиент REST API namenode DFS.
//
// REST API namenode:
//   PUT    /v1/objects/{key}?replication=N — запись с репликацией
//   GET    /v1/objects/{key}               — чтение
//   GET    /v1/objects?prefix=...          — prefix listing
//   DELETE /v1/objects?prefix=...          — удаление по префиксу
//   GET    /v1/status                      — health endpoint
//
// Размещение реплик и консистентность — ответственность бэкенда (black box):
// успешный ack означает durable-копии минимум на replicationFactor узлах.
// Клиент ретраит транзиентные сбои (сетевые ошибки, 5xx) с экспоненциальным
// backoff и возвращает ошибки storage.* только после исчерпания бюджета.
package dfsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/gofeedstore/internal/content/storage"
)

// Prometheus-метрики DFS-клиента.
var (
	dfsRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cs_dfs_requests_total",
		Help: "Количество операций DFS-клиента (по операции и результату).",
	}, []string{"op", "result"}) // result: ok, not_found, error

	dfsRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cs_dfs_retries_total",
		Help: "Количество повторных попыток DFS-клиента (по операции).",
	}, []string{"op"})

	dfsRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cs_dfs_request_duration_seconds",
		Help:    "Длительность операций DFS-клиента (включая ретраи).",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

// Client — HTTP-клиент namenode DFS. Реализует storage.ObjectStore.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     storage.ReplicationPolicy

	// timeout — таймаут одной попытки (per-attempt, через context).
	timeout time.Duration

	// retryCount — общее число попыток на операцию (по умолчанию 3).
	retryCount int
	// retryBackoff — начальная задержка перед повтором, удваивается
	// после каждой неудачной попытки (по умолчанию 200ms).
	retryBackoff time.Duration

	logger *slog.Logger
}

// New создаёт DFS-клиент.
// baseURL — адрес namenode (например, http://namenode:9870).
// timeout — таймаут одной попытки (CS_DFS_TIMEOUT).
// retryCount — число попыток (CS_DFS_RETRY_COUNT), retryBackoff — начальный
// backoff (CS_DFS_RETRY_BACKOFF).
func New(
	baseURL string,
	policy storage.ReplicationPolicy,
	timeout time.Duration,
	retryCount int,
	retryBackoff time.Duration,
	logger *slog.Logger,
) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("адрес namenode DFS не задан")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if retryCount < 1 {
		return nil, fmt.Errorf("retryCount должен быть >= 1, получено %d", retryCount)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout должен быть > 0, получено %s", timeout)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				// Пул idle-соединений к namenode
				MaxIdleConnsPerHost: 10,
			},
			// Таймаут одной попытки задаётся через context в withRetry,
			// httpClient.Timeout не используется, чтобы не конфликтовать с ним.
		},
		policy:       policy,
		timeout:      timeout,
		retryCount:   retryCount,
		retryBackoff: retryBackoff,
		logger:       logger.With(slog.String("component", "dfs_client")),
	}, nil
}

// Put записывает payload по ключу. Replication factor выводится из tier.
// После исчерпания попыток возвращает storage.ErrWriteFailed.
func (c *Client) Put(ctx context.Context, key string, payload []byte, tier storage.Tier) error {
	reqURL := fmt.Sprintf("%s/v1/objects/%s?replication=%d",
		c.baseURL, key, c.policy.Factor(tier))

	_, err := c.withRetry(ctx, "put", func(attemptCtx context.Context) (int, []byte, error) {
		req, reqErr := http.NewRequestWithContext(attemptCtx, http.MethodPut, reqURL, bytes.NewReader(payload))
		if reqErr != nil {
			return 0, nil, reqErr
		}
		req.Header.Set("Content-Type", "application/octet-stream")
		return c.doAttempt(req)
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// PUT не должен возвращать 404; считаем это отказом записи
			return fmt.Errorf("%w: namenode вернул 404 на запись %s", storage.ErrWriteFailed, key)
		}
		return fmt.Errorf("%w: %s", storage.ErrWriteFailed, err)
	}
	return nil
}

// Get возвращает payload по ключу.
// 404 → storage.ErrNotFound (без ретраев), исчерпание попыток → storage.ErrUnavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/v1/objects/%s", c.baseURL, key)

	body, err := c.withRetry(ctx, "get", func(attemptCtx context.Context) (int, []byte, error) {
		req, reqErr := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL, http.NoBody)
		if reqErr != nil {
			return 0, nil, reqErr
		}
		return c.doAttempt(req)
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s", storage.ErrUnavailable, err)
	}
	return body, nil
}

// listResponse — тело ответа prefix listing.
type listResponse struct {
	Keys []string `json:"keys"`
}

// List возвращает ключи с указанным префиксом.
// Исчерпание попыток → storage.ErrUnavailable.
func (c *Client) List(ctx context.Context, prefix string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/v1/objects?prefix=%s", c.baseURL, url.QueryEscape(prefix))

	body, err := c.withRetry(ctx, "list", func(attemptCtx context.Context) (int, []byte, error) {
		req, reqErr := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL, http.NoBody)
		if reqErr != nil {
			return 0, nil, reqErr
		}
		return c.doAttempt(req)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnavailable, err)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: некорректный ответ listing: %s", storage.ErrUnavailable, err)
	}
	return resp.Keys, nil
}

// deleteResponse — тело ответа удаления по префиксу.
type deleteResponse struct {
	Deleted int `json:"deleted"`
}

// DeletePrefix удаляет все объекты с указанным префиксом.
func (c *Client) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	reqURL := fmt.Sprintf("%s/v1/objects?prefix=%s", c.baseURL, url.QueryEscape(prefix))

	body, err := c.withRetry(ctx, "delete", func(attemptCtx context.Context) (int, []byte, error) {
		req, reqErr := http.NewRequestWithContext(attemptCtx, http.MethodDelete, reqURL, http.NoBody)
		if reqErr != nil {
			return 0, nil, reqErr
		}
		return c.doAttempt(req)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s", storage.ErrUnavailable, err)
	}

	var resp deleteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: некорректный ответ удаления: %s", storage.ErrUnavailable, err)
	}
	return resp.Deleted, nil
}

// CheckReady — проверка готовности namenode для readiness probe.
// Реализует интерфейс ReadinessChecker из api/handlers.
func (c *Client) CheckReady() (status, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/status", http.NoBody)
	if err != nil {
		return "fail", err.Error()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "fail", fmt.Sprintf("namenode недоступен: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "fail", fmt.Sprintf("namenode вернул статус %d", resp.StatusCode)
	}
	return "ok", ""
}

// errAttemptRetryable оборачивает ошибку попытки, подлежащую повтору.
type errAttemptRetryable struct{ err error }

func (e errAttemptRetryable) Error() string { return e.err.Error() }

// withRetry выполняет операцию с бюджетом попыток и экспоненциальным backoff.
// Таймаут одной попытки берётся из per-attempt context внутри attempt.
// Отмена внешнего ctx прерывает и текущую попытку, и ожидание backoff.
func (c *Client) withRetry(
	ctx context.Context,
	op string,
	attempt func(ctx context.Context) (status int, body []byte, err error),
) ([]byte, error) {
	start := time.Now()
	defer func() {
		dfsRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	backoff := c.retryBackoff
	var lastErr error

	for i := 0; i < c.retryCount; i++ {
		if i > 0 {
			dfsRetriesTotal.WithLabelValues(op).Inc()
			select {
			case <-ctx.Done():
				dfsRequestsTotal.WithLabelValues(op, "error").Inc()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		_, body, err := attempt(attemptCtx)
		cancel()
		if err != nil {
			// Отмена клиентского запроса прерывает retry-путь целиком
			if ctx.Err() != nil {
				dfsRequestsTotal.WithLabelValues(op, "error").Inc()
				return nil, ctx.Err()
			}
			var retryable errAttemptRetryable
			if errors.As(err, &retryable) {
				lastErr = retryable.err
				c.logger.Warn("Попытка DFS-операции не удалась",
					slog.String("op", op),
					slog.Int("attempt", i+1),
					slog.String("error", retryable.err.Error()),
				)
				continue
			}
			// Невосстановимая ошибка (404, 4xx, отмена) — без ретраев
			if errors.Is(err, storage.ErrNotFound) {
				dfsRequestsTotal.WithLabelValues(op, "not_found").Inc()
			} else {
				dfsRequestsTotal.WithLabelValues(op, "error").Inc()
			}
			return nil, err
		}

		dfsRequestsTotal.WithLabelValues(op, "ok").Inc()
		return body, nil
	}

	dfsRequestsTotal.WithLabelValues(op, "error").Inc()
	return nil, fmt.Errorf("после %d попыток: %v", c.retryCount, lastErr)
}

// doAttempt выполняет одну HTTP-попытку.
// Транзиентные сбои (сетевая ошибка, таймаут попытки, 5xx) возвращаются
// как errAttemptRetryable; отмену внешнего контекста различает withRetry.
func (c *Client) doAttempt(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errAttemptRetryable{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errAttemptRetryable{err: fmt.Errorf("чтение тела ответа: %w", err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp.StatusCode, body, nil
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, nil, storage.ErrNotFound
	case resp.StatusCode >= 500:
		return resp.StatusCode, nil, errAttemptRetryable{
			err: fmt.Errorf("namenode вернул статус %d", resp.StatusCode),
		}
	default:
		return resp.StatusCode, nil, fmt.Errorf("namenode вернул статус %d: %s",
			resp.StatusCode, strconv.Quote(truncate(string(body), 200)))
	}
}

// truncate обрезает строку до n символов для логов и сообщений об ошибках.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
