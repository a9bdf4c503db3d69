package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	redisclient "github.com/salon16/booking/config/redis"
	"github.com/salon16/booking/logger"
)

// createStore returns a Redis-backed rate limiter store with a
// route-specific prefix, falling back to an in-memory store when Redis is
// not configured (single-instance deployments and tests).
func createStore(routeID string, rate limiter.Rate) limiter.Store {
	rdb, err := redisclient.GetRedisClient(context.Background())
	if err != nil {
		logger.WarnLogger.Warnf("Rate limiter for %s using in-memory store: %v", routeID, err)
		return memorystore.NewStore()
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: rate.Period,
	})
	if err != nil {
		logger.WarnLogger.Warnf("Rate limiter for %s falling back to in-memory store: %v", routeID, err)
		return memorystore.NewStore()
	}
	return store
}

// NewRateLimiter builds a gin middleware limiting a route to the given rate,
// e.g. "10-1m" for ten requests per minute, keyed by client IP.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Invalid rate format %q for route %s: %v", rateStr, routeID, err)
		// Misconfigured limits must not take the route down.
		return func(c *gin.Context) { c.Next() }
	}

	return ginmiddleware.NewMiddleware(limiter.New(createStore(routeID, rate), rate))
}
