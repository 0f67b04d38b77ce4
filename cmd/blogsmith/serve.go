// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blogsmith/internal/cache"
	"blogsmith/internal/handlers"
	"blogsmith/internal/middleware"
	"blogsmith/internal/router"
	"blogsmith/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig(os.Stdout)
	if err != nil {
		return err
	}
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	a, err := newApp(ctx, cfg, true)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		return err
	}
	defer a.Close()

	opts := []handlers.Option{handlers.WithProviders(a.registry)}
	if a.db != nil {
		opts = append(opts, handlers.WithArchive(store.NewArticleStore(a.db), store.NewPublicationStore(a.db)))
	}
	if a.valkey != nil {
		opts = append(opts, handlers.WithDocumentCache(cache.NewDocumentCache(a.valkey, cache.DefaultDocumentTTL)))
	}
	if a.storage != nil {
		opts = append(opts, handlers.WithPublisher(a.storage))
	}
	api := handlers.New(a.generator, opts...)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
	defer limiter.Stop()

	// WriteTimeout must cover a full generation run.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(api, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.GenerationTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("server failed to start", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
