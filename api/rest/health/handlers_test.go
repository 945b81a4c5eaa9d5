package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	n   int
	err error
}

func (f fakeCache) Len(context.Context) (int, error) { return f.n, f.err }

type fakeSessions int

func (f fakeSessions) Count() int { return int(f) }

func serve(t *testing.T, h gin.HandlerFunc) Response {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestHandler_Healthy(t *testing.T) {
	resp := serve(t, Handler(time.Now().Add(-90*time.Second), fakeCache{n: 4}, fakeSessions(2)))

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "wexar", resp.Service)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, int64(90))
	require.NotNil(t, resp.CacheEntries)
	assert.Equal(t, 4, *resp.CacheEntries)
	assert.Equal(t, 2, resp.ActiveSessions)
}

func TestHandler_DegradedCache(t *testing.T) {
	resp := serve(t, Handler(time.Now(), fakeCache{err: errors.New("redis: connection refused")}, fakeSessions(0)))

	assert.Equal(t, "degraded", resp.Status)
	assert.Nil(t, resp.CacheEntries)
}

func TestPingHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", PingHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
