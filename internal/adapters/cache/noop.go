package cache

import (
	"context"
	"time"
)

// Noop is a Store that caches nothing. Used when caching is disabled by
// configuration; callers cannot tell it apart from a store that always misses.
type Noop struct{}

// NewNoop creates a disabled cache store.
func NewNoop() Noop { return Noop{} }

func (Noop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Noop) Set(context.Context, string, []byte, time.Duration) {}
func (Noop) InvalidatePrefix(context.Context, string) int       { return 0 }
func (Noop) Ping(context.Context) error                         { return ErrDisabled }
func (Noop) Stats(context.Context) Stats {
	return Stats{Enabled: false, Backend: "none", PrefixCounts: map[string]int{}}
}
