package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/incgamma/internal/infrastructure/config"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/logging"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/server"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags override env vars
	port := flag.String("port", cfg.Server.Port, "Server port")
	host := flag.String("host", cfg.Server.Host, "Server host")
	epsilon := flag.Float64("epsilon", cfg.Engine.Epsilon, "Relative convergence threshold")
	maxIter := flag.Int("max-iterations", cfg.Engine.MaxIterations, "Iteration cap per evaluation")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development mode (colored logs, debug level)")
	noRateLimit := flag.Bool("no-rate-limit", !cfg.RateLimit.Enabled, "Disable per-IP rate limiting")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Engine.Epsilon = *epsilon
	cfg.Engine.MaxIterations = *maxIter
	cfg.RateLimit.Enabled = !*noRateLimit
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	logger := logging.FromConfig(cfg.Logging)

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Received signal, shutting down gracefully", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}
}
