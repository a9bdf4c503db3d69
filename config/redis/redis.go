// Package redis holds the shared client backing booking summaries and the
// auth-route rate limiter. Both callers tolerate an unavailable Redis, so
// initialization failures are reported as errors rather than aborting startup.
package redis

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/salon16/booking/logger"
)

var (
	redisClient *redis.Client
	initErr     error
	redisOnce   sync.Once
)

// GetRedisClient returns the shared client, dialing REDIS_URL on first use.
// The first call's outcome is sticky: a missing URL or failed ping makes
// every subsequent call return the same error.
func GetRedisClient(ctx context.Context) (*redis.Client, error) {
	redisOnce.Do(func() {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			initErr = fmt.Errorf("REDIS_URL is not set")
			return
		}

		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			initErr = fmt.Errorf("invalid REDIS_URL: %w", err)
			return
		}

		client := redis.NewClient(opt)
		if _, err := client.Ping(ctx).Result(); err != nil {
			initErr = fmt.Errorf("redis ping failed: %w", err)
			logger.WarnLogger.Warnf("Redis unavailable, summaries and rate limiting degraded: %v", err)
			return
		}

		redisClient = client
		logger.InfoLogger.Info("Connected to Redis")
	})

	if redisClient == nil {
		return nil, fmt.Errorf("redis client not initialized: %w", initErr)
	}
	return redisClient, nil
}

// CloseRedis releases the shared client if one was ever established.
func CloseRedis() {
	if redisClient == nil {
		return
	}
	if err := redisClient.Close(); err != nil {
		logger.ErrorLogger.Errorf("Error closing Redis connection: %v", err)
		return
	}
	logger.InfoLogger.Info("Redis connection closed")
}
