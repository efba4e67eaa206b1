package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pancake-service/internal/config"
	"pancake-service/internal/logging"
	"pancake-service/internal/server"
)

var version = "dev"

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: cfg.Metrics.ServiceName,
		Version: version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger, version)
	if err != nil {
		logging.Error(logger, "failed to assemble server", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logging.Error(logger, "server exited with error", err)
		os.Exit(1)
	}
	logging.Info(logger, "server stopped")
}
