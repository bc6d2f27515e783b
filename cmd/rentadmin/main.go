// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the contract template service.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"rentadmin/internal/cache"
	"rentadmin/internal/config"
	"rentadmin/internal/database"
	"rentadmin/internal/handlers"
	"rentadmin/internal/middleware"
	"rentadmin/internal/render"
	"rentadmin/internal/router"
	"rentadmin/internal/store"
	"rentadmin/internal/versioning"
)

func main() {
	// Structured logger — text in development, JSON in production.
	var handler slog.Handler
	if os.Getenv("APP_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"backup_backend", cfg.BackupBackend,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations. These seed the default template and its
	// default backup on a fresh database.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development lease data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the current-template and backup-listing cache.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	templateCache := cache.NewTemplateCache(valkeyClient, cache.DefaultTemplateTTL)

	// Initialize data stores.
	templateStore := store.NewTemplateStore(db)
	leaseStore := store.NewLeaseStore(db)

	// Pick the backup backend. The db backend's default backup is seeded
	// by the migrations; fs and s3 backends materialize it here from the
	// current template so a fresh backend starts with a restore point.
	backups, err := newBackupStore(cfg, db, templateStore)
	if err != nil {
		slog.Error("failed to initialize backup store", "backend", cfg.BackupBackend, "error", err)
		os.Exit(1)
	}

	// Rendering engine for previews, bounded per evaluation.
	engine := render.NewEngine(leaseStore, cfg.RenderTimeout)

	// Versioning service: backup-before-write save and restore.
	service := versioning.New(templateStore, backups)

	templateHandlers := handlers.NewTemplate(service, engine, templateCache)

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	limiter := middleware.NewRateLimiter(30, time.Minute)
	defer limiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(templateHandlers, metrics, limiter)

	// Create the HTTP server with sensible timeouts. WriteTimeout leaves
	// room for a preview render that runs up to the render timeout.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newBackupStore builds the configured backup backend.
func newBackupStore(cfg *config.Config, db *sql.DB, templates *store.TemplateStore) (versioning.BackupStore, error) {
	switch cfg.BackupBackend {
	case "fs":
		fs, err := store.NewFSBackupStore(cfg.BackupDir)
		if err != nil {
			return nil, err
		}
		if err := ensureDefault(fs, templates); err != nil {
			return nil, err
		}
		return fs, nil
	case "s3":
		s3s, err := store.NewS3BackupStore(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
		if err := ensureDefault(s3s, templates); err != nil {
			return nil, err
		}
		return s3s, nil
	default:
		return store.NewBackupStore(db), nil
	}
}

// defaultEnsurer is implemented by backends whose default backup is not
// seeded by the database migrations.
type defaultEnsurer interface {
	EnsureDefault(ctx context.Context, content string) error
}

func ensureDefault(backend defaultEnsurer, templates *store.TemplateStore) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc, err := templates.GetCurrent(ctx)
	if err != nil {
		return err
	}
	return backend.EnsureDefault(ctx, doc.Content)
}
