package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"io.winapps.vybes/internal/config"
	"io.winapps.vybes/internal/db"
	"io.winapps.vybes/internal/logging"
	"io.winapps.vybes/internal/metrics"
	"io.winapps.vybes/internal/router"
	"io.winapps.vybes/internal/session"
	"io.winapps.vybes/internal/store"
)

func main() {
	cfg, loadedDotEnv, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !loadedDotEnv {
		logger.Infow("No .env file found, using system environment variables")
	}

	ctx := context.Background()
	collector := metrics.NewCollector("vybes")

	// Initialize storage
	var entryStore store.EntryStore
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warnw("using in-memory storage; entries will not survive a restart")
		entryStore = store.NewMemoryStore()
	default:
		postgresDB, err := db.InitPostgres(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatalw("Failed to initialize PostgreSQL", "error", err)
		}
		defer postgresDB.Close()
		entryStore = store.NewPostgresStore(postgresDB)
	}

	// Initialize Redis cache
	if cfg.CacheEnabled {
		redisClient, err := db.InitRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Fatalw("Failed to initialize Redis", "error", err)
		}
		defer redisClient.Close()
		entryStore = store.NewCachedStore(entryStore, redisClient, cfg.CacheTTL, logger, collector)
	}

	sessions := session.NewManager(entryStore, session.Options{
		RejectEmptyEntries: cfg.RejectEmptyEntries,
		Observer:           collector,
		Logger:             logger,
	})

	sweeper, err := session.NewSweeper(sessions, cfg.SessionSweepSchedule, cfg.SessionIdleTimeout, logger)
	if err != nil {
		logger.Fatalw("Failed to schedule session sweeper", "error", err)
	}
	sweeper.Start()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.New(router.Deps{
			Store:    entryStore,
			Sessions: sessions,
			Metrics:  collector,
			Logger:   logger,
		}),
	}

	// Start server in a goroutine
	go func() {
		logger.Infow("Server starting", "port", cfg.Port, "storage", cfg.StorageDriver, "cache", cfg.CacheEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infow("Shutting down server...")

	<-sweeper.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Server forced to shutdown", "error", err)
		return
	}

	logger.Infow("Server exited")
}
