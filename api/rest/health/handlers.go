package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/wexar/server/internal/logger"
)

const (
	serviceName = "wexar"
	version     = "1.0.0"

	cacheProbeTimeout = 2 * time.Second
)

type CacheCounter interface {
	Len(ctx context.Context) (int, error)
}

type SessionCounter interface {
	Count() int
}

// returns the server health status. a cache that cannot be counted
// marks the service degraded, it keeps serving without it.
func Handler(startedAt time.Time, cache CacheCounter, sessions SessionCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:         "healthy",
			Service:        serviceName,
			Version:        version,
			UptimeSeconds:  int64(time.Since(startedAt).Seconds()),
			ActiveSessions: sessions.Count(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cacheProbeTimeout)
		defer cancel()

		entries, err := cache.Len(ctx)
		if err != nil {
			logger.FromContext(ctx).Warn("cache health probe failed", "error", err)
			resp.Status = "degraded"
		} else {
			resp.CacheEntries = &entries
		}

		c.JSON(http.StatusOK, resp)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
