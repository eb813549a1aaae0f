package ratelimit

import (
	"context"
	"time"
)

// CounterStore is the atomic increment-with-expiry primitive behind the
// limiter. The read-modify-write must be atomic with respect to concurrent
// requests from the same identity; a lost update here means a limit bypass.
type CounterStore interface {
	// Incr adds one to the counter at key, creating it with the given
	// window duration if absent, and returns the new count and the time
	// remaining until the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, remaining time.Duration, err error)

	// Decr compensates an Incr made on behalf of a request that was
	// ultimately denied.
	Decr(ctx context.Context, key string) error
}
