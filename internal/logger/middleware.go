package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID  = "X-Request-Id"
	ContextRequestID = "request_id"

	maxRequestIDLength = 128
)

// tags each request with an id, taken from X-Request-Id when the caller
// sent a usable one, and attaches a request-scoped logger to its context.
// logs one line per request once it completes.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		l := defaultLogger.With("request_id", requestID)

		c.Set(ContextRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), l))

		start := time.Now()
		c.Next()

		l.Info("request completed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// returns the id assigned by Middleware, or "" outside of it
func RequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}
