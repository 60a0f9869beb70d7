package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maxpieter/eu-network-graph/internal/config"
	"github.com/maxpieter/eu-network-graph/internal/dataset"
	"github.com/maxpieter/eu-network-graph/internal/handlers"
	"github.com/maxpieter/eu-network-graph/internal/observability"
)

func main() {
	// A .env file is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	loader := dataset.NewLoader(dataset.Source{
		NodesPath:     cfg.Dataset.NodesPath,
		EdgesPath:     cfg.Dataset.EdgesPath,
		NodesURL:      cfg.Dataset.NodesURL,
		EdgesURL:      cfg.Dataset.EdgesURL,
		MEPLookupPath: cfg.Dataset.MEPLookupPath,
	}, cfg.Dataset.CacheTTL, logger)

	if cfg.Dataset.WatchFiles {
		watcher, err := dataset.WatchSources(loader, logger)
		if err != nil {
			logger.Warn("dataset watching disabled", zap.Error(err))
		} else if watcher != nil {
			defer watcher.Close()
		}
	}

	var collector *observability.Collector
	if cfg.EnableMetrics {
		collector = observability.NewCollector("eu_network_graph")
	}

	handler := handlers.NewRouter(
		handlers.NewGraphHandler(loader, logger, collector),
		cfg,
		logger,
		collector,
	)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
