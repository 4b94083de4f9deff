package dfsclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bigkaa/gofeedstore/internal/content/storage"
)

// newTestClient создаёт клиент с коротким backoff для тестов.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL, storage.DefaultReplicationPolicy(),
		2*time.Second, 3, time.Millisecond, slog.Default())
	if err != nil {
		t.Fatalf("New ошибка: %v", err)
	}
	return c
}

// TestClient_PutSendsReplication проверяет, что Put передаёт replication factor
// согласно tier и использует правильный путь.
func TestClient_PutSendsReplication(t *testing.T) {
	var gotMethod, gotPath, gotReplication string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotReplication = r.URL.Query().Get("replication")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if err := c.Put(context.Background(), "posts/p1.json", []byte("{}"), storage.TierHot); err != nil {
		t.Fatalf("Put ошибка: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, ожидался PUT", gotMethod)
	}
	if gotPath != "/v1/objects/posts/p1.json" {
		t.Errorf("path = %s, ожидался /v1/objects/posts/p1.json", gotPath)
	}
	if gotReplication != "3" {
		t.Errorf("replication = %s, ожидался 3 (tier hot)", gotReplication)
	}
}

// TestClient_PutWarmTier проверяет replication factor для tier warm.
func TestClient_PutWarmTier(t *testing.T) {
	var gotReplication string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReplication = r.URL.Query().Get("replication")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if err := c.Put(context.Background(), "k", []byte("{}"), storage.TierWarm); err != nil {
		t.Fatalf("Put ошибка: %v", err)
	}
	if gotReplication != "2" {
		t.Errorf("replication = %s, ожидался 2 (tier warm)", gotReplication)
	}
}

// TestClient_GetNotFound проверяет, что 404 сразу отображается
// в storage.ErrNotFound без ретраев.
func TestClient_GetNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), "posts/missing.json")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, ожидался storage.ErrNotFound", err)
	}
	if calls.Load() != 1 {
		t.Errorf("запросов = %d, 404 не должен ретраиться", calls.Load())
	}
}

// TestClient_RetryOn5xx проверяет, что 5xx ретраится и операция
// завершается успешно при восстановлении бэкенда.
func TestClient_RetryOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	body, err := c.Get(context.Background(), "posts/p1.json")
	if err != nil {
		t.Fatalf("Get ошибка: %v", err)
	}
	if string(body) != "payload" {
		t.Errorf("body = %q, ожидался %q", body, "payload")
	}
	if calls.Load() != 3 {
		t.Errorf("запросов = %d, ожидалось 3 (2 ретрая)", calls.Load())
	}
}

// TestClient_PutExhaustedBudget проверяет ErrWriteFailed после исчерпания
// бюджета попыток на пути записи.
func TestClient_PutExhaustedBudget(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Put(context.Background(), "posts/p1.json", []byte("{}"), storage.TierHot)
	if !errors.Is(err, storage.ErrWriteFailed) {
		t.Errorf("err = %v, ожидался storage.ErrWriteFailed", err)
	}
	if calls.Load() != 3 {
		t.Errorf("запросов = %d, ожидалось 3 (бюджет попыток)", calls.Load())
	}
}

// TestClient_BackoffDoubles проверяет экспоненциальный рост backoff:
// пауза перед каждым следующим ретраем удваивается относительно начальной.
func TestClient_BackoffDoubles(t *testing.T) {
	var mu sync.Mutex
	var attempts []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		attempts = append(attempts, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	const backoff = 80 * time.Millisecond
	c, err := New(srv.URL, storage.DefaultReplicationPolicy(),
		2*time.Second, 3, backoff, slog.Default())
	if err != nil {
		t.Fatalf("New ошибка: %v", err)
	}

	if err := c.Put(context.Background(), "posts/p1.json", []byte("{}"), storage.TierHot); !errors.Is(err, storage.ErrWriteFailed) {
		t.Fatalf("err = %v, ожидался storage.ErrWriteFailed", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(attempts) != 3 {
		t.Fatalf("попыток = %d, ожидалось 3", len(attempts))
	}

	// Паузы: backoff перед 2-й попыткой, 2*backoff перед 3-й.
	// Верхние границы не проверяем — тайминг в CI не детерминирован,
	// нижние гарантированы time.After.
	gap1 := attempts[1].Sub(attempts[0])
	gap2 := attempts[2].Sub(attempts[1])
	if gap1 < backoff {
		t.Errorf("пауза перед 2-й попыткой %v, ожидалось >= %v", gap1, backoff)
	}
	if gap2 < 2*backoff {
		t.Errorf("пауза перед 3-й попыткой %v, ожидалось >= %v (удвоение)", gap2, 2*backoff)
	}
}

// TestClient_GetUnavailable проверяет ErrUnavailable на пути чтения,
// когда бэкенд недоступен.
func TestClient_GetUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), "posts/p1.json")
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("err = %v, ожидался storage.ErrUnavailable", err)
	}
}

// TestClient_ListParsesKeys проверяет prefix listing.
func TestClient_ListParsesKeys(t *testing.T) {
	var gotPrefix string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefix = r.URL.Query().Get("prefix")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"keys":["comments/p1/c1.json","comments/p1/c2.json"]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	keys, err := c.List(context.Background(), "comments/p1/")
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}
	if gotPrefix != "comments/p1/" {
		t.Errorf("prefix = %q, ожидался %q", gotPrefix, "comments/p1/")
	}
	if len(keys) != 2 {
		t.Errorf("len(keys) = %d, ожидался 2", len(keys))
	}
}

// TestClient_DeletePrefix проверяет удаление по префиксу.
func TestClient_DeletePrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, ожидался DELETE", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"deleted":4}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	deleted, err := c.DeletePrefix(context.Background(), "comments/p1/")
	if err != nil {
		t.Fatalf("DeletePrefix ошибка: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted = %d, ожидался 4", deleted)
	}
}

// TestClient_CancelAbortsRetry проверяет, что отмена контекста
// прерывает retry-путь без исчерпания всего бюджета попыток.
func TestClient_CancelAbortsRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL, storage.DefaultReplicationPolicy(),
		2*time.Second, 5, 200*time.Millisecond, slog.Default())
	if err != nil {
		t.Fatalf("New ошибка: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err = c.Get(ctx, "posts/p1.json")
	if err == nil {
		t.Fatal("ожидалась ошибка после отмены контекста")
	}
	// 5 попыток с backoff 200ms+400ms+800ms+1600ms заняли бы ~3s
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("отмена заняла %s, retry-путь не прерван", elapsed)
	}
}

// TestClient_CheckReady проверяет readiness-проверку namenode.
func TestClient_CheckReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/status" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	status, _ := c.CheckReady()
	if status != "ok" {
		t.Errorf("status = %q, ожидался %q", status, "ok")
	}

	srv.Close()
	status, msg := c.CheckReady()
	if status != "fail" {
		t.Errorf("status = %q, ожидался %q (namenode остановлен): %s", status, "fail", msg)
	}
}
