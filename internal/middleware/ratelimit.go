package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"blogapi/internal/cache"
	"blogapi/internal/errors"
)

// RateLimit limits each client IP to limit requests per fixed window,
// counted in redis. When redis is unavailable the counter reads as zero and
// requests pass through.
func RateLimit(client *cache.Client, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "rate-limit:" + c.RealIP()

			count, _ := client.Incr(c.Request().Context(), key, window)
			if count > int64(limit) {
				return c.JSON(http.StatusTooManyRequests, errors.ErrorResponse{
					Error: "rate limit exceeded",
					Code:  "RATE_LIMITED",
				})
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			return next(c)
		}
	}
}
