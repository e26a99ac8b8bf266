// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"safaricamp/config"
)

// ReplayClient is the Redis client backing the duplicate-submission guard.
// It stays nil when REDIS_ADDR is not configured.
var ReplayClient *redis.Client

// InitReplayCache connects to Redis if an address is configured.
func InitReplayCache() error {
	if config.AppConfig.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReplayDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis (replay guard): %w", err)
	}
	ReplayClient = client
	return nil
}

// GetReplayClient returns the replay-guard client, or nil when Redis is disabled.
func GetReplayClient() *redis.Client {
	return ReplayClient
}
