// Package cache provides the response cache for the HTTP server.
// Entries are JSON bytes so the in-memory store (patrickmn/go-cache) and the
// shared store (Redis) are interchangeable.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fostergreatness/fgsite/internal/metrics"
	"github.com/fostergreatness/fgsite/pkg/logging"
)

// Cache stores encoded responses by key.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for ttl. A zero ttl uses the store's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a key.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
	// Stats reports the current entry count.
	Stats(ctx context.Context) Stats
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Name identifies the backend in metrics and health output.
	Name() string
}

// Stats returns cache statistics.
type Stats struct {
	Backend   string `json:"backend"`
	ItemCount int    `json:"item_count"`
}

// Fetch returns the cached value for key, or calls load and caches its result.
// Errors from load are returned and never cached. A failing cache degrades to
// calling load directly.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	log := logging.FromContext(ctx)

	data, found, err := c.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues(c.Name(), metrics.CacheError).Inc()
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	case found:
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			metrics.CacheLookupsTotal.WithLabelValues(c.Name(), metrics.CacheHit).Inc()
			return v, nil
		}
		log.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
		metrics.CacheLookupsTotal.WithLabelValues(c.Name(), metrics.CacheMiss).Inc()
	default:
		metrics.CacheLookupsTotal.WithLabelValues(c.Name(), metrics.CacheMiss).Inc()
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return v, nil
	}
	if err := c.Set(ctx, key, encoded, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return v, nil
}
