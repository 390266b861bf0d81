package main

// @title Venue Directory API
// @version 1.0.0
// @description Каталог заведений FFXIV: загрузка из удалённого справочника, фильтрация и сортировка, адреса и навигация, расписания во времени зрителя, баннеры, избранное и посещённые заведения.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/venue-directory/docs/swagger"
	"github.com/venue-directory/internal/config"
	httpDelivery "github.com/venue-directory/internal/delivery/http"
	"github.com/venue-directory/internal/delivery/http/handler"
	"github.com/venue-directory/internal/domain/repository"
	"github.com/venue-directory/internal/infrastructure/directory"
	"github.com/venue-directory/internal/pkg/logger"
	"github.com/venue-directory/internal/repository/cache"
	"github.com/venue-directory/internal/repository/dataset"
	"github.com/venue-directory/internal/repository/file"
	"github.com/venue-directory/internal/repository/postgres"
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

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Venue Directory API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("directory", cfg.Directory.BaseURL),
		zap.String("preferences_backend", cfg.Preferences.Backend),
	)

	viewer, err := cfg.DisplayLocation()
	if err != nil {
		log.Fatal("Invalid display settings", zap.Error(err))
	}

	healthChecks := make(map[string]handler.HealthCheck)

	// 3. Remote directory
	directoryClient, err := directory.NewClient(&cfg.Directory, logger.Component(log, "directory"))
	if err != nil {
		log.Fatal("Failed to create directory client", zap.Error(err))
	}

	// 4. Connect to Redis (optional: snapshot cache, streams, navigation)
	var (
		cacheRepo  repository.CacheRepository
		streamRepo repository.StreamRepository
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, running without snapshot cache and streams", zap.Error(err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Failed to close Redis connection", zap.Error(err))
				}
			}()
			log.Info("Redis connected")

			healthChecks["redis"] = redisClient.Health
			streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
			if cfg.Catalog.CacheEnabled {
				cacheRepo = cache.NewCacheRepository(redisClient)
			}
		}
	}

	// 5. Preferences store
	var prefsRepo repository.PreferenceRepository
	switch cfg.Preferences.Backend {
	case "postgres":
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = db.Migrate(migrateCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}

		healthChecks["postgres"] = db.Health
		prefsRepo = postgres.NewPreferenceRepository(db)
	default:
		prefsRepo = file.NewPreferenceRepository(cfg.Preferences.Path, log)
	}

	// 6. Initialize Use Cases
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

	sizes := usecase.NewPlotSizeIndex(dataset.NewSheetRepository(cfg.Plots.DatasetPath, log), log)

	prefsUC := usecase.NewPreferenceUseCase(prefsRepo, log)
	if err := prefsUC.Load(context.Background()); err != nil {
		log.Warn("Preferences not loaded, starting with empty lists", zap.Error(err))
	}

	venueUC := usecase.NewVenueUseCase(
		catalogUC,
		usecase.NewFilterUseCase(sizes),
		sizes,
		usecase.NewScheduleResolver(viewer, cfg.Display.TimeLayout),
		prefsUC,
		log,
	)

	var navigator repository.Navigator
	if cfg.Navigation.Enabled && streamRepo != nil {
		navigator = redisRepo.NewNavigator(streamRepo, cfg.Navigation.Stream, cfg.Navigation.Group, logger.Component(log, "navigation"))
	}
	navigationUC := usecase.NewNavigationUseCase(catalogUC, navigator, log)

	banners := usecase.NewBannerCache(directoryClient, cfg.Banner.AssetDir, logger.Component(log, "banners"))
	defer banners.Close()

	log.Info("Use cases initialized")

	// 7. Catalog loading and background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerManager := worker.NewWorkerManager(log)
	if cfg.Worker.Enabled {
		// Каталог обновляет отдельный процесс cmd/worker
		warmed, _ := catalogUC.Warm(ctx)
		if !warmed {
			catalogUC.Refresh(ctx)
		}
		if streamRepo != nil {
			workerManager.Register(catalog.NewSyncWorker(streamRepo, catalogUC, cfg.Catalog.EventStream, "", log))
		}
	} else {
		workerManager.Register(catalog.NewRefreshWorker(catalogUC, cfg.Catalog.RefreshCron, log))
	}
	if workerManager.Len() > 0 {
		if err := workerManager.Start(ctx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 8. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Health:     handler.NewHealthHandler(healthChecks, log),
		Catalog:    handler.NewCatalogHandler(catalogUC, log),
		Venue:      handler.NewVenueHandler(venueUC, navigationUC, log),
		Banner:     handler.NewBannerHandler(catalogUC, banners, log),
		Preference: handler.NewPreferenceHandler(catalogUC, prefsUC, log),
		Navigation: handler.NewNavigationHandler(navigationUC, log),
	})

	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancel()
	if workerManager.Len() > 0 {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
