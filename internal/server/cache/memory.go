package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a process-local cache backed by go-cache.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL and cleanup interval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return data, true, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.store.Set(key, stored, ttl)
	return nil
}

// Delete implements Cache.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// Clear implements Cache.
func (m *Memory) Clear(_ context.Context) error {
	m.store.Flush()
	return nil
}

// Stats implements Cache.
func (m *Memory) Stats(_ context.Context) Stats {
	return Stats{Backend: m.Name(), ItemCount: m.store.ItemCount()}
}

// Ping implements Cache.
func (m *Memory) Ping(_ context.Context) error {
	return nil
}

// Name implements Cache.
func (m *Memory) Name() string {
	return "memory"
}
