package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient backs the session store.
var RedisClient *redis.Client

// InitRedis connects and pings Redis.
func InitRedis(ctx context.Context, cfg RedisConfig) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	s, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	Logger.Info("Connected to Redis", zap.String("addr", cfg.Addr), zap.String("ping", s))
	return nil
}

// CloseRedis closes the client opened by InitRedis.
func CloseRedis() {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Close(); err != nil {
		Logger.Error("Error closing Redis connection", zap.Error(err))
	}
}
