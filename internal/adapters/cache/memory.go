package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/metrics"
)

// Memory is a process-local Store. Correct for a single worker process;
// deployments with several workers should use the Redis store instead.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	now        func() time.Time
	sweepEvery time.Duration

	hits   atomic.Uint64
	misses atomic.Uint64
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryOption applies a configuration option to the Memory store.
type MemoryOption func(*Memory)

// WithMemoryClock overrides the clock used for expiry decisions.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSweepInterval sets how often expired entries are swept out.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(m *Memory) {
		if d > 0 {
			m.sweepEvery = d
		}
	}
}

// NewMemory creates an in-memory cache store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
		sweepEvery: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get implements Store. Expired entries count as misses and are dropped lazily.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	now := m.now()

	m.mu.Lock()
	ent, ok := m.entries[key]
	if ok && !ent.expiresAt.After(now) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		m.misses.Add(1)
		metrics.RecordCacheMiss(keyPrefix(key))
		return nil, false
	}
	m.hits.Add(1)
	metrics.RecordCacheHit(keyPrefix(key))
	return ent.payload, true
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, payload []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)

	m.mu.Lock()
	m.entries[key] = memoryEntry{payload: buf, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

// InvalidatePrefix implements Store.
func (m *Memory) InvalidatePrefix(_ context.Context, pattern string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for key := range m.entries {
		if prefixPattern(key, pattern) {
			delete(m.entries, key)
			deleted++
		}
	}
	return deleted
}

// Stats implements Store.
func (m *Memory) Stats(_ context.Context) Stats {
	now := m.now()
	counts := make(map[string]int)

	m.mu.Lock()
	for key, ent := range m.entries {
		if ent.expiresAt.After(now) {
			counts[keyPrefix(key)]++
		}
	}
	m.mu.Unlock()

	return Stats{
		Enabled:      true,
		Backend:      "memory",
		Hits:         m.hits.Load(),
		Misses:       m.misses.Load(),
		PrefixCounts: counts,
	}
}

// Ping implements Store. The in-process map is always reachable.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// Sweep removes all expired entries and returns how many were dropped.
func (m *Memory) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for key, ent := range m.entries {
		if !ent.expiresAt.After(now) {
			delete(m.entries, key)
			dropped++
		}
	}
	return dropped
}

// StartSweeper runs periodic sweeps until ctx is cancelled.
func (m *Memory) StartSweeper(ctx context.Context) {
	t := time.NewTicker(m.sweepEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.Sweep()
			}
		}
	}()
}
