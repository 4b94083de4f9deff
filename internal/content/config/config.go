// Пакет config — загрузка и валидация конфигурации Content Service
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/bigkaa/gofeedstore/internal/content/storage"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Режимы хранилища.
const (
	// StorageModeDFS — основной режим: запись в DFS через namenode.
	StorageModeDFS = "dfs"
	// StorageModeMemory — dev-режим: in-memory хранилище без бэкенда.
	StorageModeMemory = "memory"
)

// Config содержит все параметры конфигурации Content Service.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (по умолчанию 8081)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration

	// --- Хранилище ---

	// Режим хранилища: dfs (основной) или memory (dev)
	StorageMode string
	// Адрес namenode DFS (обязателен в режиме dfs)
	DFSURL string
	// Таймаут одной попытки DFS-операции (по умолчанию 5s)
	DFSTimeout time.Duration
	// Число попыток DFS-операции (по умолчанию 3)
	DFSRetryCount int
	// Начальный backoff между попытками, удваивается (по умолчанию 200ms)
	DFSRetryBackoff time.Duration
	// Политика tier → replication factor (по умолчанию 3/2/1)
	Replication storage.ReplicationPolicy

	// --- Кэш постов ---

	// Максимальный размер LRU-кэша постов (по умолчанию 1024)
	CacheSize int
	// TTL записи кэша (по умолчанию 5m)
	CacheTTL time.Duration

	// --- Dephealth ---

	// Имя группы в метриках topologymetrics (по умолчанию feedstore)
	DephealthGroup string
	// Интервал проверки зависимостей (по умолчанию 30s)
	DephealthCheckInterval time.Duration
	// Лейбл isentry=yes для всех зависимостей
	DephealthIsEntry bool
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// CS_PORT — порт HTTP-сервера (по умолчанию 8081)
	cfg.Port, err = getEnvInt("CS_PORT", 8081)
	if err != nil {
		return nil, fmt.Errorf("CS_PORT: %w", err)
	}

	// CS_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("CS_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("CS_LOG_LEVEL: %w", err)
	}

	// CS_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("CS_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("CS_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("CS_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("CS_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("CS_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// CS_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("CS_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Хранилище ---

	// CS_STORAGE_MODE — режим хранилища (по умолчанию dfs)
	cfg.StorageMode = getEnvDefault("CS_STORAGE_MODE", StorageModeDFS)
	if cfg.StorageMode != StorageModeDFS && cfg.StorageMode != StorageModeMemory {
		return nil, fmt.Errorf("CS_STORAGE_MODE: недопустимый режим %q, допустимые: dfs, memory", cfg.StorageMode)
	}

	// CS_DFS_URL — адрес namenode (обязателен в режиме dfs)
	if cfg.StorageMode == StorageModeDFS {
		cfg.DFSURL, err = getEnvRequired("CS_DFS_URL")
		if err != nil {
			return nil, err
		}
	}

	// CS_DFS_TIMEOUT — таймаут одной попытки (по умолчанию 5s)
	cfg.DFSTimeout, err = getEnvDuration("CS_DFS_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_DFS_TIMEOUT: %w", err)
	}

	// CS_DFS_RETRY_COUNT — число попыток (по умолчанию 3)
	cfg.DFSRetryCount, err = getEnvInt("CS_DFS_RETRY_COUNT", 3)
	if err != nil {
		return nil, fmt.Errorf("CS_DFS_RETRY_COUNT: %w", err)
	}
	if cfg.DFSRetryCount < 1 {
		return nil, fmt.Errorf("CS_DFS_RETRY_COUNT: значение должно быть >= 1")
	}

	// CS_DFS_RETRY_BACKOFF — начальный backoff (по умолчанию 200ms)
	cfg.DFSRetryBackoff, err = getEnvDuration("CS_DFS_RETRY_BACKOFF", 200*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("CS_DFS_RETRY_BACKOFF: %w", err)
	}

	// CS_DFS_REPLICATION_HOT|WARM|COLD — факторы репликации (по умолчанию 3/2/1)
	cfg.Replication.Hot, err = getEnvInt("CS_DFS_REPLICATION_HOT", 3)
	if err != nil {
		return nil, fmt.Errorf("CS_DFS_REPLICATION_HOT: %w", err)
	}
	cfg.Replication.Warm, err = getEnvInt("CS_DFS_REPLICATION_WARM", 2)
	if err != nil {
		return nil, fmt.Errorf("CS_DFS_REPLICATION_WARM: %w", err)
	}
	cfg.Replication.Cold, err = getEnvInt("CS_DFS_REPLICATION_COLD", 1)
	if err != nil {
		return nil, fmt.Errorf("CS_DFS_REPLICATION_COLD: %w", err)
	}
	if err := cfg.Replication.Validate(); err != nil {
		return nil, fmt.Errorf("CS_DFS_REPLICATION_*: %w", err)
	}

	// --- Кэш постов ---

	cfg.CacheSize, err = getEnvInt("CS_CACHE_SIZE", 1024)
	if err != nil {
		return nil, fmt.Errorf("CS_CACHE_SIZE: %w", err)
	}
	cfg.CacheTTL, err = getEnvDuration("CS_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("CS_CACHE_TTL: %w", err)
	}

	// --- Dephealth ---

	cfg.DephealthGroup = getEnvDefault("CS_DEPHEALTH_GROUP", "feedstore")
	cfg.DephealthCheckInterval, err = getEnvDuration("CS_DEPHEALTH_CHECK_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CS_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}
	cfg.DephealthIsEntry, err = getEnvBool("DEPHEALTH_ISENTRY", false)
	if err != nil {
		return nil, fmt.Errorf("DEPHEALTH_ISENTRY: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
