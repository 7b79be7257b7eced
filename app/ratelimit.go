package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter per client kept in Redis. It slows
// down token enumeration against the public lookup endpoint.
type RateLimiter struct {
	rdb    redis.Cmdable
	name   string
	limit  int
	window time.Duration
	now    func() time.Time
	log    *slog.Logger
}

var ErrInvalidWindow = errors.New("rate limit window must be positive")

func NewRateLimiter(rdb redis.Cmdable, name string, limit int, window time.Duration, log *slog.Logger) (*RateLimiter, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rate limiter %q: %w", name, ErrInvalidWindow)
	}
	if log == nil {
		log = slog.Default()
	}
	return &RateLimiter{rdb: rdb, name: name, limit: limit, window: window, now: time.Now, log: log}, nil
}

func (l *RateLimiter) key(client string) string {
	slot := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("ratelimit:%s:%s:%d", l.name, client, slot)
}

// Allow counts one hit for client and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, client string) (bool, error) {
	k := l.key(client)
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(l.limit), nil
}

// Middleware fails open: a Redis outage must not take the lookup down.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit <= 0 {
			c.Next()
			return
		}
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			l.log.WarnContext(c.Request.Context(), "rate limiter unavailable", "limiter", l.name, "error", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, H{"error": "rate_limited"})
			return
		}
		c.Next()
	}
}
