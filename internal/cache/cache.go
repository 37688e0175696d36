// Package cache is an optional Redis-backed read cache. A nil *Cache is a
// valid no-op collaborator, so callers never branch on configuration.
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/servihub/marketplace-api/internal/config"
)

type Cache struct {
	rdb *redis.Client
}

// New returns nil when no Redis address is configured.
func New(cfg *config.Config) *Cache {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &Cache{rdb: rdb}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, val string, ttl time.Duration) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, key, val, ttl)
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, keys...)
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}
