package cache

import (
	"context"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/config"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis using the application config. When
// the connection cannot be established it returns nil and callers
// degrade gracefully: view dedup counts every view and rate limiting
// is disabled.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, continuing without it", "addr", cfg.Addr, "error", err)
		return nil
	}
	return client
}
