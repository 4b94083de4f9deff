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

// TestRequestLogger_Fields проверяет, что лог запроса содержит статус,
// размеры запроса и ответа.
func TestRequestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p-1"}`))
	}))

	body := `{"author":"alice","content":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(body))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("разбор лог-записи: %v (%s)", err, buf.String())
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, для 201 ожидался INFO", entry["level"])
	}
	if entry["status"] != float64(http.StatusCreated) {
		t.Errorf("status = %v, ожидался 201", entry["status"])
	}
	if entry["request_bytes"] != float64(len(body)) {
		t.Errorf("request_bytes = %v, ожидался %d", entry["request_bytes"], len(body))
	}
	if entry["bytes"] != float64(len(`{"id":"p-1"}`)) {
		t.Errorf("bytes = %v, ожидался размер тела ответа", entry["bytes"])
	}
}

// TestRequestLogger_ErrorLevel проверяет уровень ERROR для ответов 5xx.
func TestRequestLogger_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("разбор лог-записи: %v (%s)", err, buf.String())
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, для 502 ожидался ERROR", entry["level"])
	}
}
