package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cropcast.app/internal/app"
	"cropcast.app/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	logger.SetDefault(os.Getenv("LOG_LEVEL"))

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	cfg := application.Config()
	slog.Info("Configuration loaded successfully",
		"port", cfg.Server.Port,
		"database", cfg.Database.Driver,
		"cache", cfg.Cache.Type.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting CropCast API...")
		errCh <- application.Start(ctx)
	}()

	var startErr error
	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal...")
	case startErr = <-errCh:
		if startErr != nil {
			slog.Error("Failed to start application", "error", startErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Error during graceful shutdown", "error", err)
		os.Exit(1)
	}
	if startErr != nil {
		os.Exit(1)
	}
}
