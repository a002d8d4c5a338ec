package cache

import (
	"context"
	"fmt"

	"hotel_hub/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// Connect builds the Redis client backing the room and service listing
// cache.
func Connect(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return rdb, nil
}
