package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/campus-match/internal/config"
	"github.com/gdugdh24/campus-match/internal/infrastructure/container"
	"github.com/gdugdh24/campus-match/internal/infrastructure/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Initialize dependency injection container
	app, err := container.NewContainer(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize application")
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			log.WithError(err).Error("server error")
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

	exitCode := 0
	if err := app.Server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown error")
		exitCode = 1
	}
	cancel()
	if err := app.Close(); err != nil {
		log.WithError(err).Error("error closing application")
		exitCode = 1
	}

	log.Info("server exited")
	os.Exit(exitCode)
}
