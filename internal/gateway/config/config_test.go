package config

import (
	"log/slog"
	"testing"
	"time"
)

// TestLoad_Defaults проверяет значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GW_CONTENT_SERVERS", "http://cs-1:8081,http://cs-2:8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидался 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидался info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидался json", cfg.LogFormat)
	}
	if cfg.HealthInterval != 5*time.Second {
		t.Errorf("HealthInterval = %s, ожидался 5s", cfg.HealthInterval)
	}
	if cfg.HealthTimeout != 2*time.Second {
		t.Errorf("HealthTimeout = %s, ожидался 2s", cfg.HealthTimeout)
	}
	if cfg.HealthFailThreshold != 3 {
		t.Errorf("HealthFailThreshold = %d, ожидался 3", cfg.HealthFailThreshold)
	}
	if cfg.HealthProbePath != "/health/live" {
		t.Errorf("HealthProbePath = %q, ожидался /health/live", cfg.HealthProbePath)
	}
	if cfg.ForwardTimeout != 5*time.Second {
		t.Errorf("ForwardTimeout = %s, ожидался 5s", cfg.ForwardTimeout)
	}
	if len(cfg.ContentServers) != 2 || cfg.ContentServers[0] != "http://cs-1:8081" {
		t.Errorf("ContentServers = %v", cfg.ContentServers)
	}
}

// TestLoad_ServersRequired проверяет обязательность GW_CONTENT_SERVERS.
func TestLoad_ServersRequired(t *testing.T) {
	_, err := Load()
	if err == nil {
		t.Fatal("ожидалась ошибка: GW_CONTENT_SERVERS не задан")
	}
}

// TestLoad_ServerListParsing проверяет разбор списка экземпляров.
func TestLoad_ServerListParsing(t *testing.T) {
	// Пробелы и завершающие слэши нормализуются
	t.Setenv("GW_CONTENT_SERVERS", " http://cs-1:8081/ , http://cs-2:8081 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}
	if len(cfg.ContentServers) != 2 {
		t.Fatalf("ContentServers = %v, ожидались 2 адреса", cfg.ContentServers)
	}
	if cfg.ContentServers[0] != "http://cs-1:8081" {
		t.Errorf("ContentServers[0] = %q, слэш не убран", cfg.ContentServers[0])
	}
}

// TestLoad_Overrides проверяет переопределение значений из окружения.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GW_CONTENT_SERVERS", "http://cs-1:8081")
	t.Setenv("GW_PORT", "9000")
	t.Setenv("GW_LOG_LEVEL", "debug")
	t.Setenv("GW_HEALTH_INTERVAL", "10s")
	t.Setenv("GW_HEALTH_TIMEOUT", "1s")
	t.Setenv("GW_HEALTH_FAIL_THRESHOLD", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, ожидался 9000", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидался debug", cfg.LogLevel)
	}
	if cfg.HealthInterval != 10*time.Second {
		t.Errorf("HealthInterval = %s, ожидался 10s", cfg.HealthInterval)
	}
	if cfg.HealthFailThreshold != 5 {
		t.Errorf("HealthFailThreshold = %d, ожидался 5", cfg.HealthFailThreshold)
	}
}

// TestLoad_InvalidValues проверяет ошибки валидации.
func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"некорректный порт", "GW_PORT", "не-число"},
		{"некорректный уровень логирования", "GW_LOG_LEVEL", "trace"},
		{"некорректный формат логов", "GW_LOG_FORMAT", "xml"},
		{"адрес без схемы", "GW_CONTENT_SERVERS", "cs-1:8081"},
		{"некорректная схема", "GW_CONTENT_SERVERS", "ftp://cs-1:8081"},
		{"дубликат адреса", "GW_CONTENT_SERVERS", "http://cs-1:8081,http://cs-1:8081"},
		{"пустой список", "GW_CONTENT_SERVERS", " , "},
		{"нулевой порог", "GW_HEALTH_FAIL_THRESHOLD", "0"},
		{"таймаут probe больше интервала", "GW_HEALTH_TIMEOUT", "10s"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("GW_CONTENT_SERVERS", "http://cs-1:8081")
			t.Setenv(c.key, c.value)

			if _, err := Load(); err == nil {
				t.Errorf("ожидалась ошибка для %s=%q", c.key, c.value)
			}
		})
	}
}
