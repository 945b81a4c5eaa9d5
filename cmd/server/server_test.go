package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/wexar/server/internal/config"
)

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Port:                   "0",
		Environment:            "test",
		OpenRouterKey:          "test-key",
		OpenRouterURL:          upstreamURL,
		GeneratorModel:         "test/model",
		AppURL:                 "https://example.test",
		AppName:                "test",
		CORSOrigins:            []string{"http://localhost:3000"},
		GenerateRateAnonymous:  "5-M",
		GenerateRateIdentified: "15-M",
		CacheTTL:               time.Hour,
		CacheCapacity:          10,
		SessionCapacity:        10,
		SessionTTL:             time.Hour,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	srv, err := NewServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	return srv
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.1.1.1:1234"

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	return w
}

const upstreamReply = `{"choices":[{"message":{"content":"[EXPLICAÇÃO]Pronto![/EXPLICAÇÃO]\n[CÓDIGO]<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>x</title><script src=\"https://cdn.tailwindcss.com\"></script></head><body>oi</body></html>[/CÓDIGO]"}}]}`

func TestServer_GenerateEndToEnd(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamReply)) //nolint:errcheck // test server
	}))
	t.Cleanup(upstream.Close)

	srv := newTestServer(t, testConfig(upstream.URL))

	body := `{"prompt":"Crie uma landing page"}`

	first := serve(srv, http.MethodPost, "/api/v1/generate", body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Contains(t, first.Body.String(), `"explanation":"Pronto!"`)
	assert.NotEmpty(t, first.Header().Get("X-Request-Id"))
	assert.Equal(t, "5", first.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, int32(1), calls.Load())
}

func TestServer_MissingKeyIsConfigError(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.OpenRouterKey = ""

	srv := newTestServer(t, cfg)

	w := serve(srv, http.MethodPost, "/api/v1/generate", `{"prompt":"Crie um site"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"config_error"`)
}

func TestServer_HealthAndPing(t *testing.T) {
	srv := newTestServer(t, testConfig("http://127.0.0.1:1"))

	health := serve(srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"status":"healthy"`)
	assert.Contains(t, health.Body.String(), `"cacheEntries":0`)

	ping := serve(srv, http.MethodGet, "/api/v1/ping", "")
	assert.JSONEq(t, `{"message":"pong"}`, ping.Body.String())
}

func TestServer_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(upstreamReply)) //nolint:errcheck // test server
	}))
	t.Cleanup(upstream.Close)

	cfg := testConfig(upstream.URL)
	cfg.RedisURL = "redis://" + mr.Addr()

	srv := newTestServer(t, cfg)
	require.NotNil(t, srv.redis)

	w := serve(srv, http.MethodPost, "/api/v1/generate", `{"prompt":"Crie uma landing page"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	keys := mr.Keys()
	assert.NotEmpty(t, keys, "rate limit counters and the cached result live in redis")

	health := serve(srv, http.MethodGet, "/health", "")
	assert.Contains(t, health.Body.String(), `"cacheEntries":1`)
}

func TestNewServer_BadRedisURL(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.RedisURL = "not a url"

	_, err := NewServer(context.Background(), cfg)
	assert.ErrorContains(t, err, "redis")
}
