// internal/server/middleware.go
package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"isabella-notion/internal/common/database"
	apperrors "isabella-notion/internal/common/errors"
	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/common/metrics"
)

// RateLimiter limits each client IP to a fixed number of requests per
// minute, counted in Redis. The limiter fails open: when Redis is down,
// requests pass through rather than the whole service going dark.
func RateLimiter(redis *database.RedisClient, perMinute int, log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:" + c.RealIP()

			count, err := redis.IncrWithTTL(c.Request().Context(), key, time.Minute)
			if err != nil {
				log.Warn("rate limiter unavailable, allowing request", map[string]interface{}{
					"error": err.Error(),
				})
				return next(c)
			}

			if count > int64(perMinute) {
				metrics.RateLimitRejections.Inc()
				status, resp := apperrors.ToResponse(apperrors.NewRateLimitedError("per-client request budget exhausted"))
				return c.JSON(status, resp)
			}

			return next(c)
		}
	}
}
