// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// document.go caches rendered HTML documents of archived articles so that
// repeated exports skip the database read and template execution.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// docKeyPrefix is the Valkey key prefix for cached documents.
	docKeyPrefix = "doc:"

	// DefaultDocumentTTL is how long a rendered document stays cached.
	DefaultDocumentTTL = 30 * time.Minute
)

// DocumentCache manages rendered article HTML in Valkey.
type DocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocumentCache creates a document cache backed by the given Valkey client.
func NewDocumentCache(client *redis.Client, ttl time.Duration) *DocumentCache {
	if ttl == 0 {
		ttl = DefaultDocumentTTL
	}
	return &DocumentCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a document key. Returns false on miss.
func (dc *DocumentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := dc.client.Get(ctx, docKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("document cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("document cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a document key with the configured TTL.
func (dc *DocumentCache) Set(ctx context.Context, key string, html []byte) {
	if err := dc.client.Set(ctx, docKeyPrefix+key, html, dc.ttl).Err(); err != nil {
		slog.Warn("document cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single document from the cache.
func (dc *DocumentCache) Invalidate(ctx context.Context, key string) {
	if err := dc.client.Del(ctx, docKeyPrefix+key).Err(); err != nil {
		slog.Warn("document cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("document cache invalidated", "key", key)
}

// InvalidateAll removes all cached documents by scanning for the prefix.
// Used when the export template changes.
func (dc *DocumentCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := dc.client.Scan(ctx, cursor, docKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("document cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := dc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("document cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("document cache cleared", "deleted", deleted)
	}
}

// DocumentKey returns the cache key for an article document in a format
// such as "html" or "md".
func DocumentKey(articleID, format string) string {
	return articleID + "." + format
}
