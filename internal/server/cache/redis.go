package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fostergreatness/fgsite/pkg/errors"
)

// DefaultKeyPrefix namespaces fgsite entries in a shared Redis.
const DefaultKeyPrefix = "fgsite:cache:"

// Redis is a cache shared between server replicas.
type Redis struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewRedis connects to the Redis server at url (redis://[:password@]host:port/db)
// and verifies the connection.
func NewRedis(ctx context.Context, url string, defaultTTL time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.NewConfigError("cache", "invalid redis url", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewIOError("connect", "redis "+opts.Addr, err)
	}
	return NewRedisFromClient(client, defaultTTL), nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, defaultTTL time.Duration) *Redis {
	return &Redis{client: client, prefix: DefaultKeyPrefix, defaultTTL: defaultTTL}
}

// Get implements Cache.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewIOError("read", "redis "+key, err)
	}
	return data, true, nil
}

// Set implements Cache.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return errors.NewIOError("write", "redis "+key, err)
	}
	return nil
}

// Delete implements Cache.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return errors.NewIOError("delete", "redis "+key, err)
	}
	return nil
}

// Clear implements Cache. Only keys under the cache prefix are removed.
func (r *Redis) Clear(ctx context.Context) error {
	keys, err := r.keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errors.NewIOError("delete", "redis "+r.prefix+"*", err)
	}
	return nil
}

// Stats implements Cache.
func (r *Redis) Stats(ctx context.Context) Stats {
	keys, err := r.keys(ctx)
	if err != nil {
		return Stats{Backend: r.Name(), ItemCount: -1}
	}
	return Stats{Backend: r.Name(), ItemCount: len(keys)}
}

// Ping implements Cache.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Name implements Cache.
func (r *Redis) Name() string {
	return "redis"
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.NewIOError("scan", "redis "+r.prefix+"*", err)
	}
	return keys, nil
}
