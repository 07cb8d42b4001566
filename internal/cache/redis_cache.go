package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// redisCache stores catalog records as JSON under the catalog:* keys.
type redisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func NewRedisCache(client *redis.Client, cfg *config.CacheConfig) Cache {
	c := &redisCache{client: client}
	if cfg != nil {
		c.defaultTTL = cfg.DefaultTTL
	}

	return c
}

// Get decodes the entry under key into value. A miss is not an error, and
// neither is an entry that no longer decodes into value: such an entry was
// written by an older record shape, so it is evicted and reported as a miss.
func (r *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("catalog cache read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		slog.Warn("Evicting undecodable catalog cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))

		if delErr := r.client.Del(ctx, key).Err(); delErr != nil {
			return false, fmt.Errorf("catalog cache evict %s: %w", key, delErr)
		}

		return false, nil
	}

	return true, nil
}

// Set stores value for ttl, or for the configured default when ttl is not
// positive. Without any positive TTL the entry is not written, so catalog
// prices and stock never stick around indefinitely.
func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {

	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("catalog cache encode %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache write %s: %w", key, err)
	}

	return nil
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("catalog cache delete %s: %w", key, err)
	}

	return nil
}

// Close is a no-op: the redis client is shared with the rate limiter and
// closed by main.
func (r *redisCache) Close() error {
	return nil
}
