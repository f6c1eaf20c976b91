package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Komy007/kkshop-sub000/internal/config"
	"github.com/Komy007/kkshop-sub000/internal/logging"
	"github.com/Komy007/kkshop-sub000/internal/services"
	grpcserver "github.com/Komy007/kkshop-sub000/internal/transport/grpc"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration from .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Initialize logging
	logs, err := logging.NewGoLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	logger := logging.ModuleLogger(logs, logging.RootModule)

	logger.Info("catalog.server.starting",
		"storage", cfg.StorageBackend,
		"translation_provider", cfg.TranslationProvider,
		"languages", cfg.Languages.String(),
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// 3. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logs)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer func() {
		if err := serviceOpts.Close(); err != nil {
			logger.Error("catalog.server.close_failed", "error", err.Error())
		}
	}()

	// 4. Start gRPC server (health + reflection) in background
	grpcServer := grpcserver.NewServer(logging.ModuleLogger(logs, logging.RootModule))
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	// 5. Start HTTP server in background
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           serviceOpts.CatalogHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("catalog.http.listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	// 6. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("catalog.server.shutting_down", "signal", sig.String())
	case runErr = <-errCh:
		logger.Error("catalog.server.failed", "error", runErr.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Health flips to NOT_SERVING before HTTP stops accepting requests.
	grpcServer.Stop(shutdownCtx)

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("catalog.http.shutdown_failed", "error", err.Error())
	}

	logger.Info("catalog.server.stopped")
	return runErr
}
