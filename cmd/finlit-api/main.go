package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finlit/internal/calculation"
	"github.com/rgehrsitz/finlit/internal/config"
	"github.com/rgehrsitz/finlit/internal/httpapi"
	"github.com/rgehrsitz/finlit/internal/logging"
)

var version = "dev"

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	rules, err := config.NewInputParser().LoadRules(os.Getenv("FINLIT_RULES"))
	if err != nil {
		return err
	}
	engine := calculation.NewEngineWithRules(rules)
	engine.SetLogger(logging.NewEngineLogger(logger))

	opts := []httpapi.Option{httpapi.WithVersion(version)}
	if raw := os.Getenv("FINLIT_REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid FINLIT_REQUEST_TIMEOUT %q: %w", raw, err)
		}
		opts = append(opts, httpapi.WithTimeout(d))
	}

	addr := os.Getenv("FINLIT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewServer(engine, logger, opts...).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
