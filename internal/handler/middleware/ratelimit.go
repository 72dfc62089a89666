package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tablebook/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// NewRateLimitMiddleware is a fixed-window counter keyed per user (falling
// back to client IP). Redis being down never blocks bookings: the limiter
// fails open and logs.
func NewRateLimitMiddleware(cfg config.RedisConfig, rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	window := cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	limit := cfg.RateLimitMax
	if limit <= 0 {
		limit = 10
	}

	return func(c *gin.Context) {
		key := rateKey(c)
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err.Error())
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				slog.Warn("failed to set rate limit window", "key", key, "error", err.Error())
			}
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			retryAfter := int(window / time.Second)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func rateKey(c *gin.Context) string {
	if userID, ok := GetUserID(c); ok {
		return fmt.Sprintf("ratelimit:user:%s:%s", userID, c.FullPath())
	}
	return fmt.Sprintf("ratelimit:ip:%s:%s", c.ClientIP(), c.FullPath())
}
