package cache

import (
	"context"
	"sync"
	"time"
)

const (
	defaultCapacity      = 1000
	defaultSweepInterval = time.Minute
)

// MemoryStore is a bounded in-process TTL cache.
// when full, the entry closest to expiry is evicted to make room.
type MemoryStore[V any] struct {
	mu       sync.RWMutex
	entries  map[string]entry[V]
	capacity int
	now      func() time.Time
	done     chan struct{}
	closed   bool
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// creates a store and starts its background sweep. callers must Close it.
func NewMemoryStore[V any](capacity int) *MemoryStore[V] {
	return newMemoryStore[V](capacity, defaultSweepInterval, time.Now)
}

func newMemoryStore[V any](capacity int, sweepInterval time.Duration, now func() time.Time) *MemoryStore[V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	store := &MemoryStore[V]{
		entries:  make(map[string]entry[V]),
		capacity: capacity,
		now:      now,
		done:     make(chan struct{}),
	}

	go store.sweepLoop(sweepInterval)

	return store
}

// returns the value if present and unexpired; expired entries are evicted
func (s *MemoryStore[V]) Get(_ context.Context, key string) (V, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V

	e, exists := s.entries[key]
	if !exists {
		return zero, false, nil
	}

	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return zero, false, nil
	}

	return e.value, true, nil
}

// stores value until now+ttl
func (s *MemoryStore[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.capacity {
		s.removeExpired(now)

		if len(s.entries) >= s.capacity {
			s.evictSoonest()
		}
	}

	s.entries[key] = entry[V]{value: value, expiresAt: now.Add(ttl)}

	return nil
}

func (s *MemoryStore[V]) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// number of stored entries, including expired ones not yet swept
func (s *MemoryStore[V]) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries), nil
}

// stops the sweep goroutine
func (s *MemoryStore[V]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	close(s.done)
	return nil
}

func (s *MemoryStore[V]) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore[V]) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeExpired(s.now())
}

// caller holds the lock
func (s *MemoryStore[V]) removeExpired(now time.Time) {
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// caller holds the lock
func (s *MemoryStore[V]) evictSoonest() {
	var (
		victim  string
		soonest time.Time
		found   bool
	)

	for key, e := range s.entries {
		if !found || e.expiresAt.Before(soonest) {
			victim, soonest, found = key, e.expiresAt, true
		}
	}

	if found {
		delete(s.entries, victim)
	}
}
