package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisPrefix = "wexar:cache:"

	scanBatch = 100
)

// RedisStore keeps JSON-encoded values under a key prefix with native TTLs
type RedisStore[V any] struct {
	client *redis.Client
	prefix string
}

// creates a redis-backed store; the client is owned by the caller
func NewRedisStore[V any](client *redis.Client, prefix string) *RedisStore[V] {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisStore[V]{client: client, prefix: prefix}
}

func (s *RedisStore[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var value V

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}

	if err != nil {
		return value, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	return value, true, nil
}

func (s *RedisStore[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

func (s *RedisStore[V]) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// counts keys under the prefix
func (s *RedisStore[V]) Len(ctx context.Context) (int, error) {
	count := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatch).Iterator()

	for iter.Next(ctx) {
		count++
	}

	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}

	return count, nil
}

// the redis client is shared, so there is nothing to release here
func (s *RedisStore[V]) Close() error {
	return nil
}
