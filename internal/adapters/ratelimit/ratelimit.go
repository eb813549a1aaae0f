// Package ratelimit enforces per-client window limits before requests reach
// business logic.
//
// Each route declares one or more window limits and the service adds global
// windows that apply across all routes. Admission requires capacity in every
// applicable window. Denied requests do not consume capacity: counters are
// incremented optimistically and compensated back down when any window
// overflows, so a client stuck above a limit can recover as soon as the
// window turns over. Backend failures fail open; losing the limiter must
// never take down reads.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/metrics"
)

// Window is a fixed-duration interval over which a limit is enforced.
type Window int

const (
	Minute Window = iota
	Hour
	Day
)

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	switch w {
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	default:
		return 24 * time.Hour
	}
}

func (w Window) String() string {
	switch w {
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	default:
		return "day"
	}
}

// Limit caps requests per identity within one window.
type Limit struct {
	Window Window
	Max    int
}

// Policy maps routes to their window limits. Global limits apply to every
// route on top of the route's own.
type Policy struct {
	Routes map[string][]Limit
	Global []Limit
}

// Decision is the admission outcome. RetryAfter is set when denied and is
// the time remaining in the tightest-binding violated window.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter decides admission using a swappable counter store. A process-local
// store is correct for a single worker; the Redis store keeps limits correct
// across multiple stateless workers.
type Limiter struct {
	store  CounterStore
	policy Policy
	guard  *rate.Limiter
}

// Option applies a configuration option to the Limiter.
type Option func(*Limiter)

// WithBurstGuard adds a process-wide token bucket in front of the window
// checks, capping instantaneous throughput regardless of identity.
func WithBurstGuard(rps float64, burst int) Option {
	return func(l *Limiter) {
		if rps > 0 && burst > 0 {
			l.guard = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// New creates a Limiter over the given counter store and policy.
func New(store CounterStore, policy Policy, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		policy: policy,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type applied struct {
	key   string
	limit Limit
}

// Allow decides whether identity may issue one request on route.
func (l *Limiter) Allow(ctx context.Context, identity, route string) Decision {
	if l.guard != nil {
		res := l.guard.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			metrics.RecordRateLimitDecision(route, "denied")
			return Decision{RetryAfter: ceilSeconds(delay)}
		}
	}

	limits := make([]applied, 0, 4)
	for _, lim := range l.policy.Routes[route] {
		limits = append(limits, applied{key: counterKey(identity, route, lim.Window), limit: lim})
	}
	for _, lim := range l.policy.Global {
		limits = append(limits, applied{key: counterKey(identity, "global", lim.Window), limit: lim})
	}

	var (
		incremented = make([]string, 0, len(limits))
		retryAfter  time.Duration
		denied      bool
	)
	for _, a := range limits {
		count, remaining, err := l.store.Incr(ctx, a.key, a.limit.Window.Duration())
		if err != nil {
			// Fail open: a broken counter backend disables limiting.
			continue
		}
		incremented = append(incremented, a.key)
		if count > int64(a.limit.Max) {
			denied = true
			if remaining > retryAfter {
				retryAfter = remaining
			}
		}
	}

	if denied {
		for _, key := range incremented {
			_ = l.store.Decr(ctx, key)
		}
		if retryAfter <= 0 {
			retryAfter = time.Second
		}
		metrics.RecordRateLimitDecision(route, "denied")
		return Decision{RetryAfter: ceilSeconds(retryAfter)}
	}

	metrics.RecordRateLimitDecision(route, "allowed")
	return Decision{Allowed: true}
}

func counterKey(identity, scope string, w Window) string {
	return "rl:" + identity + ":" + scope + ":" + w.String()
}

func ceilSeconds(d time.Duration) time.Duration {
	if rem := d % time.Second; rem != 0 {
		d += time.Second - rem
	}
	return d
}
