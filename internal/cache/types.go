package cache

import (
	"context"
	"time"
)

// implemented by MemoryStore and RedisStore
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, bool, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Len(ctx context.Context) (int, error)
	Close() error
}

var (
	_ Store[string] = (*MemoryStore[string])(nil)
	_ Store[string] = (*RedisStore[string])(nil)
)
