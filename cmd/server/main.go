package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ojmarte/construction-api/internal/config"
	"github.com/ojmarte/construction-api/internal/repository"
	"github.com/ojmarte/construction-api/internal/repository/memory"
	"github.com/ojmarte/construction-api/internal/repository/mongodb"
	"github.com/ojmarte/construction-api/internal/scheduler"
	"github.com/ojmarte/construction-api/internal/server/handlers"
	"github.com/ojmarte/construction-api/internal/server/metrics"
	"github.com/ojmarte/construction-api/internal/server/router"
	"github.com/ojmarte/construction-api/internal/service/catalog"
	"github.com/ojmarte/construction-api/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	newLogger := logger.New
	if !cfg.IsProduction() {
		newLogger = logger.NewDevelopment
	}
	baseLogger := logger.Must(newLogger(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	db, err := openStorage(cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	services := catalog.NewServices(db, baseLogger.Named("svc"))
	api := handlers.NewAPI(services, baseLogger.Named("handlers"))

	monitor := scheduler.NewStorageMonitor(db, cfg.Health.CheckSchedule, cfg.MongoDB.Timeout, baseLogger.Named("scheduler"))

	opts := router.Options{Health: handlers.NewHealthHandler(monitor)}
	if cfg.Metrics.Enabled {
		httpMetrics, err := metrics.NewHTTPMetrics()
		if err != nil {
			baseLogger.Fatal("failed to init metrics", zap.Error(err))
		}
		monitor.OnCheck(httpMetrics.SetStorageUp)
		opts.Metrics = httpMetrics
	}

	if err := monitor.Start(); err != nil {
		baseLogger.Fatal("failed to start storage monitor", zap.Error(err))
	}
	defer monitor.Stop()

	engine := router.New(api, opts, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.WithCORS(engine, cfg.Server.CORSAllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStorage(cfg *config.Config, log *zap.Logger) (repository.Database, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.NewDatabase(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	defer cancel()

	repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Timeout, log.Named("repo.mongodb"))
	if err != nil {
		return nil, err
	}
	return repo, nil
}
