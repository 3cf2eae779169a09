package services

import (
	"context"
	"time"

	"business-permits-backend/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache status values reported in the X-Preview-Cache response header.
const (
	CacheHit    = "HIT"
	CacheMiss   = "MISS"
	CacheBypass = "BYPASS"
)

// PreviewCache stores rendered PDF bytes in Redis. Cache unavailability must
// never fail an export: a nil client or any Redis error just skips caching.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPreviewCache(client *redis.Client, ttl time.Duration) *PreviewCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PreviewCache{client: client, ttl: ttl}
}

// Enabled reports whether a cache backend is configured at all.
func (c *PreviewCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached bytes and whether the key was present.
func (c *PreviewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		config.Logger.Warn("Preview cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

// Set writes the rendered bytes with the cache TTL, logging failures as
// warnings only.
func (c *PreviewCache) Set(ctx context.Context, key string, data []byte) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		config.Logger.Warn("Preview cache write failed", zap.String("key", key), zap.Error(err))
	}
}
