package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps window counters in process memory. Counters are created
// lazily on first use and reset once their window elapses. Only correct for
// a single worker process.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*windowCounter

	now          func() time.Time
	cleanupEvery time.Duration
}

type windowCounter struct {
	count   int64
	resetAt time.Time
}

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the clock used for window boundaries.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCleanupEvery sets the janitor interval for expired counters.
func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if d > 0 {
			s.cleanupEvery = d
		}
	}
}

// NewMemoryStore creates a process-local counter store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		counters:     make(map[string]*windowCounter),
		now:          time.Now,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Incr implements CounterStore.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || !c.resetAt.After(now) {
		c = &windowCounter{resetAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++
	return c.count, c.resetAt.Sub(now), nil
}

// Decr implements CounterStore.
func (s *MemoryStore) Decr(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.counters[key]; ok && c.count > 0 {
		c.count--
	}
	return nil
}

// Cleanup drops counters whose window has elapsed.
func (s *MemoryStore) Cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, c := range s.counters {
		if !c.resetAt.After(now) {
			delete(s.counters, key)
		}
	}
}

// StartJanitor runs periodic cleanup until ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
