package ratelimit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"codeberg.org/wexar/server/internal/auth"
	"codeberg.org/wexar/server/internal/errors"
	"codeberg.org/wexar/server/internal/logger"
)

const (
	DefaultPrefix = "wexar:ratelimit"

	memoryCleanupInterval = 30 * time.Second
	redisMaxRetry         = 3

	limitExceededMessage = "rate limit exceeded, try again in a few minutes"
)

// formatted rates, e.g. "5-M" for five requests per minute
type Config struct {
	Anonymous  string // per client IP
	Identified string // per user id
}

// quota for generation requests: anonymous callers are keyed by IP,
// identified callers by user id with a larger allowance
type Limiter struct {
	anonymous  *limiter.Limiter
	identified *limiter.Limiter
}

// redis-backed store when client is non-nil, in-memory otherwise
func NewStore(client *redis.Client, prefix string) (limiter.Store, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: memoryCleanupInterval,
		}), nil
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   prefix,
		MaxRetry: redisMaxRetry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}

	return store, nil
}

func New(config Config, store limiter.Store) (*Limiter, error) {
	anonymousRate, err := limiter.NewRateFromFormatted(config.Anonymous)
	if err != nil {
		return nil, fmt.Errorf("invalid anonymous rate %q: %w", config.Anonymous, err)
	}

	identifiedRate, err := limiter.NewRateFromFormatted(config.Identified)
	if err != nil {
		return nil, fmt.Errorf("invalid identified rate %q: %w", config.Identified, err)
	}

	return &Limiter{
		anonymous:  limiter.New(store, anonymousRate),
		identified: limiter.New(store, identifiedRate),
	}, nil
}

// returns a Gin middleware that enforces the quota.
// must run after auth.IdentityMiddleware. store errors fail open.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		instance, key := l.anonymous, "ip:"+c.ClientIP()

		if userID, ok := auth.GetUserID(c); ok {
			instance, key = l.identified, "user:"+userID
		}

		result, err := instance.Get(c.Request.Context(), key)
		if err != nil {
			logger.ErrorErr(err, "rate limiter unavailable, allowing request", "key", key)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.Reset, 10))

		if result.Reached {
			logger.Warn("rate limit exceeded", "key", key, "path", c.Request.URL.Path)
			errors.TooManyRequests(c, limitExceededMessage, time.Until(time.Unix(result.Reset, 0)))
			return
		}

		c.Next()
	}
}
