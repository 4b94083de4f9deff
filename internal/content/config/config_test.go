package config

import (
	"log/slog"
	"testing"
	"time"
)

// TestLoad_Defaults проверяет значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CS_STORAGE_MODE", "memory") // без обязательного CS_DFS_URL

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}

	if cfg.Port != 8081 {
		t.Errorf("Port = %d, ожидался 8081", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидался info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидался json", cfg.LogFormat)
	}
	if cfg.DFSRetryCount != 3 {
		t.Errorf("DFSRetryCount = %d, ожидался 3", cfg.DFSRetryCount)
	}
	if cfg.DFSRetryBackoff != 200*time.Millisecond {
		t.Errorf("DFSRetryBackoff = %s, ожидался 200ms", cfg.DFSRetryBackoff)
	}
	if cfg.Replication.Hot != 3 || cfg.Replication.Warm != 2 || cfg.Replication.Cold != 1 {
		t.Errorf("Replication = %+v, ожидалось 3/2/1", cfg.Replication)
	}
	if cfg.CacheSize != 1024 {
		t.Errorf("CacheSize = %d, ожидался 1024", cfg.CacheSize)
	}
}

// TestLoad_DFSURLRequired проверяет обязательность CS_DFS_URL в режиме dfs.
func TestLoad_DFSURLRequired(t *testing.T) {
	t.Setenv("CS_STORAGE_MODE", "dfs")

	_, err := Load()
	if err == nil {
		t.Fatal("ожидалась ошибка: CS_DFS_URL не задан в режиме dfs")
	}
}

// TestLoad_Overrides проверяет переопределение значений из окружения.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CS_PORT", "9001")
	t.Setenv("CS_LOG_LEVEL", "debug")
	t.Setenv("CS_LOG_FORMAT", "text")
	t.Setenv("CS_DFS_URL", "http://namenode:9870")
	t.Setenv("CS_DFS_RETRY_COUNT", "5")
	t.Setenv("CS_DFS_REPLICATION_HOT", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load ошибка: %v", err)
	}

	if cfg.Port != 9001 {
		t.Errorf("Port = %d, ожидался 9001", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидался debug", cfg.LogLevel)
	}
	if cfg.DFSURL != "http://namenode:9870" {
		t.Errorf("DFSURL = %q", cfg.DFSURL)
	}
	if cfg.DFSRetryCount != 5 {
		t.Errorf("DFSRetryCount = %d, ожидался 5", cfg.DFSRetryCount)
	}
	if cfg.Replication.Hot != 4 {
		t.Errorf("Replication.Hot = %d, ожидался 4", cfg.Replication.Hot)
	}
}

// TestLoad_InvalidValues проверяет ошибки валидации.
func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"некорректный порт", "CS_PORT", "не-число"},
		{"некорректный уровень логирования", "CS_LOG_LEVEL", "trace"},
		{"некорректный формат логов", "CS_LOG_FORMAT", "xml"},
		{"некорректный режим хранилища", "CS_STORAGE_MODE", "s3"},
		{"нулевой retry count", "CS_DFS_RETRY_COUNT", "0"},
		{"нулевая репликация", "CS_DFS_REPLICATION_HOT", "0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("CS_STORAGE_MODE", "memory")
			t.Setenv(c.key, c.value)

			if _, err := Load(); err == nil {
				t.Errorf("ожидалась ошибка для %s=%q", c.key, c.value)
			}
		})
	}
}
