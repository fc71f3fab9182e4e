// Package main запускает клиентский шлюз baedariyo.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/baedariyo/internal/api"
	"github.com/mmeshcher/baedariyo/internal/backend"
	"github.com/mmeshcher/baedariyo/internal/config"
	"github.com/mmeshcher/baedariyo/internal/fallback"
	"github.com/mmeshcher/baedariyo/internal/handler"
	"github.com/mmeshcher/baedariyo/internal/localstate"
	"github.com/mmeshcher/baedariyo/internal/middleware"
	"github.com/mmeshcher/baedariyo/internal/mock"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newStore(cfg *config.Config, sugar *zap.SugaredLogger) (localstate.Store, error) {
	if cfg.DatabaseURI == "" {
		sugar.Info("DATABASE_URI is not set, local state is kept in memory")
		return localstate.NewMemoryStore(), nil
	}
	return localstate.NewPostgresStore(cfg.DatabaseURI)
}

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	store, err := newStore(cfg, sugar)
	if err != nil {
		sugar.Fatalw("local state initialization error", "error", err.Error())
	}
	local := localstate.NewService(store)
	defer local.Close()

	state, err := mock.NewState()
	if err != nil {
		sugar.Fatalw("mock state initialization error", "error", err.Error())
	}

	be := backend.NewClient(backend.Config{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.RequestTimeout,
		RetryMax: cfg.RequestRetryMax,
		Logger:   logger,
	})
	client := api.NewClient(be, state, fallback.NewDispatcher(logger, cfg.IsDevelopment()))

	if _, err := cfg.MapSDKURL(); err != nil {
		sugar.Warnw("map is unavailable", "error", err.Error())
	}

	deviceMiddleware := middleware.NewDeviceMiddleware(cfg.DeviceSecret)
	h := handler.NewHandler(client, local, logger, deviceMiddleware, cfg.MapSDKURL)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting baedariyo gateway", "addr", cfg.RunAddress, "backend", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
