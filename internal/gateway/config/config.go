// Пакет config — загрузка и валидация конфигурации Gateway
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Gateway.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (по умолчанию 8080)
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

	// --- Upstream ---

	// Список экземпляров Content Service (обязателен)
	ContentServers []string
	// Таймаут одной попытки форвардинга (по умолчанию 5s)
	ForwardTimeout time.Duration

	// --- Health check ---

	// Интервал между probe (по умолчанию 5s)
	HealthInterval time.Duration
	// Таймаут одного probe (по умолчанию 2s)
	HealthTimeout time.Duration
	// Число подряд сбоев до исключения экземпляра (по умолчанию 3)
	HealthFailThreshold int
	// Путь liveness probe на экземпляре (по умолчанию /health/live)
	HealthProbePath string
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// GW_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("GW_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("GW_PORT: %w", err)
	}

	// GW_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("GW_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("GW_LOG_LEVEL: %w", err)
	}

	// GW_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("GW_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("GW_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("GW_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("GW_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("GW_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// GW_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("GW_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Upstream ---

	// GW_CONTENT_SERVERS — список экземпляров через запятую (обязателен)
	servers, err := getEnvRequired("GW_CONTENT_SERVERS")
	if err != nil {
		return nil, err
	}
	cfg.ContentServers, err = parseServerList(servers)
	if err != nil {
		return nil, fmt.Errorf("GW_CONTENT_SERVERS: %w", err)
	}

	// GW_FORWARD_TIMEOUT — таймаут одной попытки форвардинга (по умолчанию 5s)
	cfg.ForwardTimeout, err = getEnvDuration("GW_FORWARD_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_FORWARD_TIMEOUT: %w", err)
	}

	// --- Health check ---

	// GW_HEALTH_INTERVAL — интервал probe (по умолчанию 5s)
	cfg.HealthInterval, err = getEnvDuration("GW_HEALTH_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_HEALTH_INTERVAL: %w", err)
	}

	// GW_HEALTH_TIMEOUT — таймаут probe (по умолчанию 2s)
	cfg.HealthTimeout, err = getEnvDuration("GW_HEALTH_TIMEOUT", 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("GW_HEALTH_TIMEOUT: %w", err)
	}
	if cfg.HealthTimeout >= cfg.HealthInterval {
		return nil, fmt.Errorf("GW_HEALTH_TIMEOUT: таймаут probe (%s) должен быть меньше интервала (%s)",
			cfg.HealthTimeout, cfg.HealthInterval)
	}

	// GW_HEALTH_FAIL_THRESHOLD — порог подряд сбоев (по умолчанию 3)
	cfg.HealthFailThreshold, err = getEnvInt("GW_HEALTH_FAIL_THRESHOLD", 3)
	if err != nil {
		return nil, fmt.Errorf("GW_HEALTH_FAIL_THRESHOLD: %w", err)
	}
	if cfg.HealthFailThreshold < 1 {
		return nil, fmt.Errorf("GW_HEALTH_FAIL_THRESHOLD: значение должно быть >= 1")
	}

	// GW_HEALTH_PROBE_PATH — путь probe (по умолчанию /health/live)
	cfg.HealthProbePath = getEnvDefault("GW_HEALTH_PROBE_PATH", "/health/live")
	if !strings.HasPrefix(cfg.HealthProbePath, "/") {
		return nil, fmt.Errorf("GW_HEALTH_PROBE_PATH: путь должен начинаться с /")
	}

	return cfg, nil
}

// parseServerList разбирает список адресов через запятую, валидирует
// каждый URL и убирает завершающие слэши.
func parseServerList(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	servers := make([]string, 0, len(parts))
	seen := make(map[string]bool)

	for _, p := range parts {
		s := strings.TrimRight(strings.TrimSpace(p), "/")
		if s == "" {
			continue
		}
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("некорректный адрес экземпляра: %q", p)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("некорректная схема %q в адресе %q", u.Scheme, p)
		}
		if seen[s] {
			return nil, fmt.Errorf("дубликат адреса экземпляра: %q", s)
		}
		seen[s] = true
		servers = append(servers, s)
	}

	if len(servers) == 0 {
		return nil, fmt.Errorf("список экземпляров пуст")
	}
	return servers, nil
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
