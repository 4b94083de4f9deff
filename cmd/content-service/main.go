// main.go — точка входа Content Service.
//
// Content Service stateless и горизонтально реплицируется: N одинаковых
// экземпляров за Gateway, координация между ними не требуется —
// всё состояние живёт в DFS.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/bigkaa/gofeedstore/internal/content/api/handlers"
	"github.com/bigkaa/gofeedstore/internal/content/api/middleware"
	"github.com/bigkaa/gofeedstore/internal/content/config"
	"github.com/bigkaa/gofeedstore/internal/content/server"
	"github.com/bigkaa/gofeedstore/internal/content/service"
	"github.com/bigkaa/gofeedstore/internal/content/storage"
	"github.com/bigkaa/gofeedstore/internal/content/storage/dfsclient"
	"github.com/bigkaa/gofeedstore/internal/content/storage/memstore"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Content Service запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("storage_mode", cfg.StorageMode),
	)

	// 3. Хранилище: DFS-клиент или in-memory (dev-режим)
	var store storage.ObjectStore
	var dfsChecker handlers.ReadinessChecker
	var dephealthSvc *service.DephealthService

	if cfg.StorageMode == config.StorageModeDFS {
		dfs, err := dfsclient.New(cfg.DFSURL, cfg.Replication,
			cfg.DFSTimeout, cfg.DFSRetryCount, cfg.DFSRetryBackoff, logger)
		if err != nil {
			log.Fatalf("Ошибка создания DFS-клиента: %v", err)
		}
		store = dfs
		dfsChecker = dfs

		// Мониторинг зависимости DFS через topologymetrics
		dephealthSvc, err = service.NewDephealthService(
			"content-service",
			cfg.DephealthGroup,
			cfg.DFSURL,
			cfg.DephealthCheckInterval,
			cfg.DephealthIsEntry,
			logger,
		)
		if err != nil {
			log.Fatalf("Ошибка создания dephealth: %v", err)
		}
	} else {
		logger.Warn("Режим memory: данные не переживут перезапуск процесса")
		store = memstore.New(cfg.Replication)
		dfsChecker = memoryChecker{}
	}

	// 4. Кэш постов и сервис контента
	cache := service.NewPostCache(cfg.CacheSize, cfg.CacheTTL)
	contentSvc := service.NewContentService(store, cache, logger)

	// 5. Handlers
	healthHandler := handlers.NewHealthHandler(dfsChecker)
	apiHandler := handlers.NewAPIHandler(contentSvc, healthHandler, logger)

	// 6. Запуск dephealth (если сконфигурирован)
	if dephealthSvc != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := dephealthSvc.Start(ctx); err != nil {
			log.Fatalf("Ошибка запуска dephealth: %v", err)
		}
		defer dephealthSvc.Stop()
	}

	// 7. HTTP-сервер с middleware (метрики, логирование)
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)

	// 8. Запуск сервера (блокирующий вызов с graceful shutdown)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		log.Fatalf("Сервер завершился с ошибкой: %v", err)
	}

	logger.Info("Content Service остановлен")
}

// memoryChecker — readiness-заглушка для режима memory: всегда ok.
type memoryChecker struct{}

func (memoryChecker) CheckReady() (string, string) {
	return "ok", "in-memory хранилище"
}
