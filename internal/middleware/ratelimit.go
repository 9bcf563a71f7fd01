package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Yashdhankecha/Thryfto-sub001/internal/config"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware enforces a fixed-window request limit per client
// IP, counted in Redis so multiple instances share the budget. With a
// nil client or disabled config it is a no-op; a Redis error lets the
// request through rather than failing it.
func RateLimitMiddleware(cfg config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	window := time.Duration(cfg.WindowS) * time.Second

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		windowStart := time.Now().Unix() / int64(cfg.WindowS)
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), windowStart)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.CtxWarn(ctx, "rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		remaining := int64(cfg.Capacity) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Capacity) {
			c.Header("Retry-After", strconv.Itoa(cfg.WindowS))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
