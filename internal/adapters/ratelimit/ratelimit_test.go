package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/ratelimit"
	. "github.com/smartystreets/goconvey/convey"
)

// brokenStore simulates an unreachable counter backend.
type brokenStore struct{}

func (brokenStore) Incr(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("backend down")
}

func (brokenStore) Decr(context.Context, string) error {
	return errors.New("backend down")
}

func TestMemoryCounterStore(t *testing.T) {
	Convey("Given a memory counter store with a controllable clock", t, func() {
		ctx := context.Background()
		now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		store := ratelimit.NewMemoryStore(ratelimit.WithClock(func() time.Time { return now }))

		Convey("When a counter is incremented repeatedly", func() {
			c1, rem1, err1 := store.Incr(ctx, "k", time.Minute)
			c2, _, err2 := store.Incr(ctx, "k", time.Minute)

			Convey("Then counts grow within the window", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(c1, ShouldEqual, 1)
				So(c2, ShouldEqual, 2)
				So(rem1, ShouldEqual, time.Minute)
			})
		})

		Convey("When the window elapses", func() {
			_, _, _ = store.Incr(ctx, "k", time.Minute)
			now = now.Add(61 * time.Second)

			count, _, err := store.Incr(ctx, "k", time.Minute)

			Convey("Then the counter resets", func() {
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When an increment is compensated", func() {
			_, _, _ = store.Incr(ctx, "k", time.Minute)
			_, _, _ = store.Incr(ctx, "k", time.Minute)
			So(store.Decr(ctx, "k"), ShouldBeNil)

			count, _, _ := store.Incr(ctx, "k", time.Minute)

			Convey("Then the denied request consumed no capacity", func() {
				So(count, ShouldEqual, 2)
			})
		})

		Convey("When expired counters are cleaned up", func() {
			_, _, _ = store.Incr(ctx, "old", time.Minute)
			now = now.Add(2 * time.Minute)
			_, _, _ = store.Incr(ctx, "fresh", time.Hour)

			store.Cleanup()

			count, _, _ := store.Incr(ctx, "fresh", time.Hour)
			So(count, ShouldEqual, 2)
		})
	})
}

func TestLimiter(t *testing.T) {
	Convey("Given a limiter with a 3-per-minute route limit", t, func() {
		ctx := context.Background()
		now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		store := ratelimit.NewMemoryStore(ratelimit.WithClock(func() time.Time { return now }))
		limiter := ratelimit.New(store, ratelimit.Policy{
			Routes: map[string][]ratelimit.Limit{
				"lookup": {{Window: ratelimit.Minute, Max: 3}},
			},
		})

		Convey("When an identity issues requests within the window", func() {
			var decisions []ratelimit.Decision
			for i := 0; i < 4; i++ {
				decisions = append(decisions, limiter.Allow(ctx, "10.0.0.1", "lookup"))
			}

			Convey("Then exactly the limit is admitted and the next is denied", func() {
				So(decisions[0].Allowed, ShouldBeTrue)
				So(decisions[1].Allowed, ShouldBeTrue)
				So(decisions[2].Allowed, ShouldBeTrue)
				So(decisions[3].Allowed, ShouldBeFalse)
				So(decisions[3].RetryAfter, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the window turns over after a denial", func() {
			for i := 0; i < 4; i++ {
				limiter.Allow(ctx, "10.0.0.1", "lookup")
			}
			now = now.Add(61 * time.Second)

			Convey("Then the identity recovers immediately", func() {
				So(limiter.Allow(ctx, "10.0.0.1", "lookup").Allowed, ShouldBeTrue)
			})
		})

		Convey("When a different identity arrives", func() {
			for i := 0; i < 4; i++ {
				limiter.Allow(ctx, "10.0.0.1", "lookup")
			}

			Convey("Then its counters are independent", func() {
				So(limiter.Allow(ctx, "10.0.0.2", "lookup").Allowed, ShouldBeTrue)
			})
		})

		Convey("When the route has no declared limits", func() {
			Convey("Then requests pass through", func() {
				So(limiter.Allow(ctx, "10.0.0.1", "unknown").Allowed, ShouldBeTrue)
			})
		})
	})

	Convey("Given a limiter with route and global limits", t, func() {
		ctx := context.Background()
		now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		store := ratelimit.NewMemoryStore(ratelimit.WithClock(func() time.Time { return now }))
		limiter := ratelimit.New(store, ratelimit.Policy{
			Routes: map[string][]ratelimit.Limit{
				"lookup": {{Window: ratelimit.Minute, Max: 10}},
				"years":  {{Window: ratelimit.Minute, Max: 10}},
			},
			Global: []ratelimit.Limit{{Window: ratelimit.Hour, Max: 5}},
		})

		Convey("When the global window is exhausted across routes", func() {
			for i := 0; i < 3; i++ {
				So(limiter.Allow(ctx, "10.0.0.1", "lookup").Allowed, ShouldBeTrue)
			}
			for i := 0; i < 2; i++ {
				So(limiter.Allow(ctx, "10.0.0.1", "years").Allowed, ShouldBeTrue)
			}

			decision := limiter.Allow(ctx, "10.0.0.1", "lookup")

			Convey("Then admission fails on the global window with its remaining time", func() {
				So(decision.Allowed, ShouldBeFalse)
				So(decision.RetryAfter, ShouldBeGreaterThan, 50*time.Minute)
			})
		})
	})

	Convey("Given a limiter over an unreachable backend", t, func() {
		ctx := context.Background()
		limiter := ratelimit.New(brokenStore{}, ratelimit.Policy{
			Routes: map[string][]ratelimit.Limit{
				"lookup": {{Window: ratelimit.Minute, Max: 1}},
			},
		})

		Convey("When requests arrive", func() {
			Convey("Then the limiter fails open", func() {
				for i := 0; i < 5; i++ {
					So(limiter.Allow(ctx, "10.0.0.1", "lookup").Allowed, ShouldBeTrue)
				}
			})
		})
	})

	Convey("Given a limiter with an exhausted burst guard", t, func() {
		ctx := context.Background()
		store := ratelimit.NewMemoryStore()
		limiter := ratelimit.New(store, ratelimit.Policy{},
			ratelimit.WithBurstGuard(0.001, 1))

		Convey("When the bucket is drained", func() {
			first := limiter.Allow(ctx, "10.0.0.1", "lookup")
			second := limiter.Allow(ctx, "10.0.0.1", "lookup")

			Convey("Then further requests are denied with a retry hint", func() {
				So(first.Allowed, ShouldBeTrue)
				So(second.Allowed, ShouldBeFalse)
				So(second.RetryAfter, ShouldBeGreaterThan, 0)
			})
		})
	})
}
