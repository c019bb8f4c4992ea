package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lfms6164/digital-folder-api/internal/api"
	"github.com/lfms6164/digital-folder-api/internal/config"
	"github.com/lfms6164/digital-folder-api/internal/db"
	"github.com/lfms6164/digital-folder-api/internal/logger"
	"github.com/lfms6164/digital-folder-api/internal/storage"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	// Define CLI flags
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Override port from CLI flag if provided
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Initialize logger
	logger.Init(cfg.Log.Format, cfg.Log.Level)
	slog.Info("Starting digital folder server", "version", Version, "env", cfg.Server.Env)

	// Initialize database
	database, err := db.New(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	slog.Info("Database initialized", "driver", cfg.Database.Driver)

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Create default users if configured via environment
	if err := db.SeedUsers(database); err != nil {
		slog.Error("Failed to seed users", "error", err)
		os.Exit(1)
	}

	// Connect to object storage; the bucket is named after the environment
	blob, err := storage.NewObjectStore(context.Background(), cfg.Storage, cfg.Server.Env)
	if err != nil {
		slog.Error("Failed to connect to object storage", "error", err)
		os.Exit(1)
	}
	slog.Info("Object storage connected", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Server.Env)

	// Initialize API router
	router := api.NewRouter(cfg, database, blob)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
