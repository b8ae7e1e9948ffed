package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"asset_tracker/internal/app/provider"
	"asset_tracker/internal/app/service"
	"asset_tracker/internal/infrastructure/configloader"
	"asset_tracker/internal/infrastructure/ratesclient"
	"asset_tracker/internal/infrastructure/restapi"
	"asset_tracker/internal/infrastructure/snapshotloader"
	"asset_tracker/internal/pkg/logger"
	"asset_tracker/internal/pkg/metrics"
)

func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.String("path", cfgPath), zap.Error(err))
	}
	logger.InitSlog(cfg.Logging.Level)
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegister()

	appLogger := logger.NewSlogAdapter()

	var rates ratesclient.Client
	if cfg.RatesFeed.BaseURL != "" {
		rates = ratesclient.New(
			cfg.RatesFeed.BaseURL,
			time.Duration(cfg.RatesFeed.RequestTimeoutMillis)*time.Millisecond,
			zapLogger,
		)
		zapLogger.Info("Rates feed client initialized", zap.String("baseURL", cfg.RatesFeed.BaseURL))
	}

	stateLoader := snapshotloader.New(cfg.State.Dir, appLogger)
	snapshots := provider.NewSnapshotProvider(stateLoader, rates, cfg.State.MaxRefreshPerSecond, appLogger)
	balanceSvc := service.NewBalanceService(snapshots, time.Duration(cfg.Cache.TTLSeconds)*time.Second, appLogger)
	zapLogger.Info("BalanceService initialized", zap.String("stateDir", cfg.State.Dir))

	balanceHandler := restapi.NewBalanceHandler(balanceSvc, appLogger)
	router := restapi.SetupRouter(balanceHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
