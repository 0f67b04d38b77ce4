// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"blogsmith/internal/ai"
	"blogsmith/internal/cache"
	"blogsmith/internal/config"
	"blogsmith/internal/database"
	"blogsmith/internal/enrich"
	"blogsmith/internal/filter"
	"blogsmith/internal/generator"
	"blogsmith/internal/images"
	"blogsmith/internal/research"
	"blogsmith/internal/storage"
)

// app holds the long-lived collaborators shared by the commands.
type app struct {
	cfg       *config.Config
	registry  *ai.Registry
	generator *generator.Generator
	valkey    *redis.Client   // nil when the cache is disabled
	db        *sql.DB         // nil when the archive is disabled
	storage   *storage.Client // nil when publishing is disabled
}

// newApp connects to the configured backends and builds the generator.
// Valkey, PostgreSQL and S3 are optional.
func newApp(ctx context.Context, cfg *config.Config, withArchive bool) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	a.registry = ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"claude": {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"openai": {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
	})
	slog.Info("ai providers initialized",
		"active", a.registry.ActiveName(),
		"available", a.registry.Available(),
	)

	searcher, err := research.NewSearcher(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		a.valkey, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return nil, fmt.Errorf("connect valkey: %w", err)
		}
	} else {
		slog.Warn("valkey not configured, image lookups and documents are not cached")
	}

	var finder enrich.ImageFinder
	if cfg.UnsplashKey != "" {
		opts := []images.Option{images.WithRequestsPerMinute(cfg.UnsplashRPM)}
		if a.valkey != nil {
			opts = append(opts, images.WithCache(cache.NewLookup(a.valkey, "unsplash", cfg.ImageCacheTTL)))
		}
		finder = images.NewUnsplash(cfg.UnsplashKey, cfg.UnsplashBaseURL, opts...)
	} else {
		slog.Warn("unsplash not configured, sections get no images")
	}

	a.generator = generator.New(
		a.registry,
		searcher,
		enrich.New(finder,
			enrich.WithConcurrency(cfg.ImageConcurrency),
			enrich.WithLookupTimeout(cfg.ImageTimeout),
		),
		filter.New(cfg.DenylistPhrases),
		generator.WithModerator(a.registry),
		generator.WithTimeout(cfg.GenerationTimeout),
	)

	if withArchive {
		if err := a.connectArchive(ctx); err != nil {
			a.Close()
			return nil, err
		}
		if err := a.connectStorage(); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// connectArchive opens and migrates the article archive when enabled.
func (a *app) connectArchive(ctx context.Context) error {
	if !a.cfg.ArchiveEnabled {
		slog.Warn("postgres not configured, article archive disabled")
		return nil
	}
	db, err := database.Connect(ctx, a.cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("migrate database: %w", err)
	}
	a.db = db
	return nil
}

// connectStorage creates the S3 client when publishing is configured.
func (a *app) connectStorage() error {
	if !a.cfg.StorageEnabled() {
		slog.Warn("s3 storage not configured, publishing disabled")
		return nil
	}
	client, err := storage.New(
		a.cfg.S3Endpoint, a.cfg.S3Region, a.cfg.S3AccessKey, a.cfg.S3SecretKey,
		a.cfg.S3Bucket, a.cfg.S3PublicURL,
	)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if client != nil {
		slog.Info("s3 storage connected", "endpoint", a.cfg.S3Endpoint, "bucket", client.Bucket())
	}
	a.storage = client
	return nil
}

// Close releases the backend connections.
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.valkey != nil {
		a.valkey.Close()
	}
}
