// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultLookupTTL is how long an external lookup result stays cached.
const DefaultLookupTTL = 15 * time.Minute

// Lookup caches JSON-encoded results of external lookups (image searches)
// under a namespace prefix. Errors are logged and treated as misses so a
// Valkey outage never fails a lookup.
type Lookup struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewLookup creates a lookup cache whose keys live under "<namespace>:".
func NewLookup(client *redis.Client, namespace string, ttl time.Duration) *Lookup {
	if ttl <= 0 {
		ttl = DefaultLookupTTL
	}
	return &Lookup{client: client, prefix: namespace + ":", ttl: ttl}
}

// Get decodes the cached value for key into v. Returns false on miss.
func (l *Lookup) Get(ctx context.Context, key string, v any) bool {
	data, err := l.client.Get(ctx, l.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("lookup cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("lookup cache decode error", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores v under key with the configured TTL.
func (l *Lookup) Set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("lookup cache encode error", "key", key, "error", err)
		return
	}
	if err := l.client.Set(ctx, l.prefix+key, data, l.ttl).Err(); err != nil {
		slog.Warn("lookup cache set error", "key", key, "error", err)
	}
}
