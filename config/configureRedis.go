package config

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedisServer connects to Redis. The preview cache degrades gracefully
// when Redis is down, so a failed ping returns nil instead of panicking and
// callers treat a nil client as "cache disabled".
func InitRedisServer(ctx context.Context) *redis.Client {
	addr := GetEnvOr("REDIS_ADDRESS", "localhost:6379")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		Logger.Warn("Redis unreachable, preview caching disabled", zap.String("addr", addr), zap.Error(err))
		return nil
	}

	return client
}
