// FilePath: internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/urbanclimate/airwatch/internal/config"
)

// Cache is a small JSON cache over Redis used to shield the analytics
// queries from repeated identical requests. It is strictly optional: a
// nil *Cache is a valid no-op cache, and any Redis failure degrades to
// a miss rather than an error.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection. Returns an error
// only when Redis is enabled but unreachable, so misconfiguration is
// caught at startup rather than silently degrading every request.
func New(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	nuts.L.Infof("[Cache] Connected to redis at %s:%d, ttl %s", cfg.Host, cfg.Port, cfg.CacheTTL)
	return &Cache{client: client, ttl: cfg.CacheTTL}, nil
}

// Get unmarshals the cached value for key into out. Returns false on a
// miss, a Redis failure, or a stale payload that no longer decodes.
func (c *Cache) Get(ctx context.Context, key string, out interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			nuts.L.Warnf("[Cache] Get %s failed: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		nuts.L.Warnf("[Cache] Failed to decode cached value for %s: %v", key, err)
		return false
	}
	return true
}

// Set stores the value under key with the configured TTL. Failures are
// logged and swallowed.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		nuts.L.Warnf("[Cache] Failed to encode value for %s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		nuts.L.Warnf("[Cache] Set %s failed: %v", key, err)
	}
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
