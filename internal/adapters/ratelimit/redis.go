package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps window counters in a shared Redis instance so limits hold
// across multiple stateless worker processes. INCR plus EXPIRE NX gives the
// atomic increment-with-expiry the limiter contract requires.
type RedisStore struct {
	rdb       *redis.Client
	opTimeout time.Duration
}

// RedisOption applies a configuration option to the RedisStore.
type RedisOption func(*RedisStore)

// WithOpTimeout bounds each backend round trip.
func WithOpTimeout(d time.Duration) RedisOption {
	return func(s *RedisStore) {
		if d > 0 {
			s.opTimeout = d
		}
	}
}

// NewRedisStore creates a Redis-backed counter store.
func NewRedisStore(rdb *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		rdb:       rdb,
		opTimeout: 150 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Incr implements CounterStore.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	octx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	pipe := s.rdb.Pipeline()
	incr := pipe.Incr(octx, key)
	pipe.ExpireNX(octx, key, window)
	pttl := pipe.PTTL(octx, key)
	if _, err := pipe.Exec(octx); err != nil {
		return 0, 0, fmt.Errorf("counter incr: %w", err)
	}

	remaining := pttl.Val()
	if remaining < 0 {
		remaining = window
	}
	return incr.Val(), remaining, nil
}

// Decr implements CounterStore.
func (s *RedisStore) Decr(ctx context.Context, key string) error {
	octx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.rdb.Decr(octx, key).Err(); err != nil {
		return fmt.Errorf("counter decr: %w", err)
	}
	return nil
}
