package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
}

func newTestRedisStore(t *testing.T) (*RedisStore[payload], *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() }) //nolint:errcheck // test cleanup

	return NewRedisStore[payload](client, ""), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	want := payload{Code: "<html></html>", Explanation: "ok"}
	require.NoError(t, store.Set(ctx, "generate:r1:oi:new", want, time.Hour))

	assert.True(t, mr.Exists(DefaultRedisPrefix+"generate:r1:oi:new"))
	assert.Equal(t, time.Hour, mr.TTL(DefaultRedisPrefix+"generate:r1:oi:new"))

	got, ok, err := store.Get(ctx, "generate:r1:oi:new")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "k", payload{Code: "x"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, mr.Set(DefaultRedisPrefix+"k", "{not json"))

	_, ok, err := store.Get(ctx, "k")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "failed to decode cache entry")
}

func TestRedisStore_LenCountsPrefixOnly(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "a", payload{}, time.Minute))
	require.NoError(t, store.Set(ctx, "b", payload{}, time.Minute))
	require.NoError(t, mr.Set("ratelimit:x", "1"))

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, store.Delete(ctx, "a"))

	n, err = store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)
	mr.Close()

	_, _, err := store.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to read cache entry")
}
