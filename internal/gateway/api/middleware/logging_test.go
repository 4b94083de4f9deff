package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestLevelForStatus проверяет отображение статус-кода на уровень логирования.
func TestLevelForStatus(t *testing.T) {
	cases := []struct {
		status int
		want   slog.Level
	}{
		{http.StatusOK, slog.LevelInfo},
		{http.StatusFound, slog.LevelInfo},
		{http.StatusNotFound, slog.LevelWarn},
		{http.StatusInternalServerError, slog.LevelError},
		{http.StatusBadGateway, slog.LevelError},
	}
	for _, c := range cases {
		if got := levelForStatus(c.status); got != c.want {
			t.Errorf("levelForStatus(%d) = %v, ожидался %v", c.status, got, c.want)
		}
	}
}

// TestRequestLogger_Fields проверяет, что лог запроса содержит статус,
// размер ответа и User-Agent клиента.
func TestRequestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts/p-1/comments", nil)
	req.Header.Set("User-Agent", "curl/8.0")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("разбор лог-записи: %v (%s)", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, для 404 ожидался WARN", entry["level"])
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Errorf("status = %v, ожидался 404", entry["status"])
	}
	if entry["bytes"] != float64(len("nope")) {
		t.Errorf("bytes = %v, ожидался %d", entry["bytes"], len("nope"))
	}
	if entry["user_agent"] != "curl/8.0" {
		t.Errorf("user_agent = %v, ожидался curl/8.0", entry["user_agent"])
	}
	if !strings.Contains(buf.String(), `"path":"/posts/p-1/comments"`) {
		t.Errorf("в записи нет пути запроса: %s", buf.String())
	}
}
