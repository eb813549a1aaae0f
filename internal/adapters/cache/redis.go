package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/metrics"
)

// Redis is a Store backed by a shared Redis instance, giving all worker
// processes a consistent view of cached responses. Every call is bounded by
// the configured operation timeout and fails soft: an unreachable backend
// turns the cache into an always-miss store.
type Redis struct {
	rdb       *redis.Client
	opTimeout time.Duration
	prefixes  []string

	hits   atomic.Uint64
	misses atomic.Uint64
}

// RedisOption applies a configuration option to the Redis store.
type RedisOption func(*Redis)

// WithOpTimeout bounds each backend round trip.
func WithOpTimeout(d time.Duration) RedisOption {
	return func(r *Redis) {
		if d > 0 {
			r.opTimeout = d
		}
	}
}

// WithPrefixes declares the key prefixes counted by Stats.
func WithPrefixes(prefixes ...string) RedisOption {
	return func(r *Redis) {
		r.prefixes = prefixes
	}
}

// NewRedis creates a Redis-backed cache store.
func NewRedis(rdb *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{
		rdb:       rdb,
		opTimeout: 150 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.opTimeout)
}

// Get implements Store. Backend errors count as misses.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	octx, cancel := r.bound(ctx)
	defer cancel()

	payload, err := r.rdb.Get(octx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.RecordCacheBackendError("get")
		}
		r.misses.Add(1)
		metrics.RecordCacheMiss(keyPrefix(key))
		return nil, false
	}
	r.hits.Add(1)
	metrics.RecordCacheHit(keyPrefix(key))
	return payload, true
}

// Set implements Store. Write failures are swallowed; the entry is simply
// not cached.
func (r *Redis) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	octx, cancel := r.bound(ctx)
	defer cancel()

	if err := r.rdb.Set(octx, key, payload, ttl).Err(); err != nil {
		metrics.RecordCacheBackendError("set")
	}
}

// InvalidatePrefix implements Store using SCAN rather than KEYS so a large
// keyspace does not block the backend.
func (r *Redis) InvalidatePrefix(ctx context.Context, pattern string) int {
	octx, cancel := r.bound(ctx)
	defer cancel()

	deleted := 0
	iter := r.rdb.Scan(octx, 0, pattern, 100).Iterator()
	for iter.Next(octx) {
		if err := r.rdb.Del(octx, iter.Val()).Err(); err == nil {
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		metrics.RecordCacheBackendError("invalidate")
	}
	return deleted
}

// Stats implements Store.
func (r *Redis) Stats(ctx context.Context) Stats {
	octx, cancel := r.bound(ctx)
	defer cancel()

	counts := make(map[string]int, len(r.prefixes))
	enabled := true
	for _, prefix := range r.prefixes {
		n := 0
		iter := r.rdb.Scan(octx, 0, prefix+":*", 100).Iterator()
		for iter.Next(octx) {
			n++
		}
		if iter.Err() != nil {
			enabled = false
			break
		}
		counts[prefix] = n
	}

	return Stats{
		Enabled:      enabled,
		Backend:      "redis",
		Hits:         r.hits.Load(),
		Misses:       r.misses.Load(),
		PrefixCounts: counts,
	}
}

// Ping implements Store.
func (r *Redis) Ping(ctx context.Context) error {
	octx, cancel := r.bound(ctx)
	defer cancel()

	if err := r.rdb.Ping(octx).Err(); err != nil {
		return ErrUnavailable
	}
	return nil
}
