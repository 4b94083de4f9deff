// main.go — точка входа Gateway.
//
// Gateway — единственная внешняя точка входа: принимает запросы клиентов,
// следит за здоровьем экземпляров Content Service и пересылает трафик
// только на здоровые. Список экземпляров фиксируется при старте.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/bigkaa/gofeedstore/internal/gateway/api/handlers"
	"github.com/bigkaa/gofeedstore/internal/gateway/api/middleware"
	"github.com/bigkaa/gofeedstore/internal/gateway/config"
	"github.com/bigkaa/gofeedstore/internal/gateway/health"
	"github.com/bigkaa/gofeedstore/internal/gateway/pool"
	"github.com/bigkaa/gofeedstore/internal/gateway/proxy"
	"github.com/bigkaa/gofeedstore/internal/gateway/server"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Gateway запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.Int("content_servers", len(cfg.ContentServers)),
	)

	// 3. Таблица здоровья экземпляров Content Service
	instancePool, err := pool.New(cfg.ContentServers, cfg.HealthFailThreshold, logger)
	if err != nil {
		log.Fatalf("Ошибка создания пула экземпляров: %v", err)
	}

	// 4. Фоновый health check
	checker := health.New(instancePool, cfg.HealthInterval, cfg.HealthTimeout,
		cfg.HealthProbePath, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	checker.Start(ctx)
	defer checker.Stop()

	// 5. Форвардер и handlers
	forwarder := proxy.New(instancePool, cfg.ForwardTimeout, logger)
	healthHandler := handlers.NewHealthHandler(instancePool)
	apiHandler := handlers.NewAPIHandler(forwarder, healthHandler, logger)

	// 6. HTTP-сервер с middleware (метрики, логирование)
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)

	// 7. Запуск сервера (блокирующий вызов с graceful shutdown)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		log.Fatalf("Сервер завершился с ошибкой: %v", err)
	}

	logger.Info("Gateway остановлен")
}
