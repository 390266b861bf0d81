package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/venue-directory/internal/config"
	"github.com/venue-directory/internal/domain/repository"
	"github.com/venue-directory/internal/infrastructure/directory"
	"github.com/venue-directory/internal/pkg/logger"
	"github.com/venue-directory/internal/repository/cache"
	redisRepo "github.com/venue-directory/internal/repository/redis"
	"github.com/venue-directory/internal/usecase"
	"github.com/venue-directory/internal/worker"
	"github.com/venue-directory/internal/worker/catalog"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Catalog Refresh Worker")
	log.Info("Configuration loaded",
		zap.String("directory", cfg.Directory.BaseURL),
		zap.String("schedule", cfg.Catalog.RefreshCron),
		zap.String("event_stream", cfg.Catalog.EventStream),
		zap.Duration("cache_ttl", cfg.Catalog.CacheTTL))

	// 3. Connect to Redis: снимок и события нужны процессам API
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	directoryClient, err := directory.NewClient(&cfg.Directory, logger.Component(log, "directory"))
	if err != nil {
		log.Fatal("Failed to create directory client", zap.Error(err))
	}
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	var cacheRepo repository.CacheRepository
	if cfg.Catalog.CacheEnabled {
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	// 5. Initialize use cases
	catalogUC := usecase.NewCatalogUseCase(
		directoryClient,
		cacheRepo,
		streamRepo,
		usecase.CatalogOptions{
			CacheTTL:    cfg.Catalog.CacheTTL,
			EventStream: cfg.Catalog.EventStream,
		},
		logger.Component(log, "catalog"),
	)

	// 6. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(catalog.NewRefreshWorker(catalogUC, cfg.Catalog.RefreshCron, log))

	// 7. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
