// Package cache provides the response cache used in front of the dataset.
//
// Every operation degrades to a no-op or a miss when the backing store is
// unreachable; callers must tolerate caching being transparently disabled
// and never surface a cache failure as a request failure.
package cache

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Store is a key/value store with per-key TTL.
type Store interface {
	// Get returns the payload for key, or ok=false when the key is absent,
	// expired, or the backend is unreachable.
	Get(ctx context.Context, key string) (payload []byte, ok bool)

	// Set overwrites key unconditionally with the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)

	// InvalidatePrefix deletes all keys matching a glob-style prefix
	// pattern such as "finals:*" and returns the number deleted.
	InvalidatePrefix(ctx context.Context, pattern string) int

	// Stats reports backend state and hit/miss counters.
	Stats(ctx context.Context) Stats

	// Ping checks backend reachability.
	Ping(ctx context.Context) error
}

// Stats is the aggregate introspection shape exposed by /api/cache/stats.
type Stats struct {
	Enabled      bool           `json:"enabled"`
	Backend      string         `json:"backend"`
	Hits         uint64         `json:"hits"`
	Misses       uint64         `json:"misses"`
	PrefixCounts map[string]int `json:"prefix_counts"`
}

// HitRate returns the hit percentage across all lookups so far.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Key derives a deterministic cache key from the endpoint prefix and the
// request's query parameters. Values are joined in ascending order of their
// parameter names, so two logically identical requests map to the same key
// regardless of submission order. This is the load-bearing invariant for
// cache correctness.
func Key(prefix string, params url.Values) string {
	if len(params) == 0 {
		return prefix + ":"
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]string, 0, len(names))
	for _, name := range names {
		values = append(values, params.Get(name))
	}
	return prefix + ":" + strings.Join(values, "_")
}

// keyPrefix returns the endpoint prefix portion of a derived key.
func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// prefixPattern reports whether key matches a glob-style prefix pattern.
// Only trailing-star patterns are supported; that is all the service uses.
func prefixPattern(key, pattern string) bool {
	if p, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(key, p)
	}
	return key == pattern
}
