package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/cache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store with a controllable clock", t, func() {
		ctx := context.Background()
		now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		store := cache.NewMemory(cache.WithMemoryClock(func() time.Time { return now }))

		Convey("When an entry is set and read back within its TTL", func() {
			store.Set(ctx, "wimbledon_api:2021", []byte(`{"year":2021}`), time.Hour)
			payload, ok := store.Get(ctx, "wimbledon_api:2021")

			Convey("Then it should hit", func() {
				So(ok, ShouldBeTrue)
				So(string(payload), ShouldEqual, `{"year":2021}`)
			})
		})

		Convey("When an entry's TTL elapses", func() {
			store.Set(ctx, "wimbledon_api:2021", []byte("x"), time.Minute)
			now = now.Add(2 * time.Minute)

			_, ok := store.Get(ctx, "wimbledon_api:2021")

			Convey("Then absence is equivalent to expiry", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When an entry is overwritten", func() {
			store.Set(ctx, "k", []byte("old"), time.Hour)
			store.Set(ctx, "k", []byte("new"), time.Hour)
			payload, ok := store.Get(ctx, "k")

			Convey("Then the last write wins unconditionally", func() {
				So(ok, ShouldBeTrue)
				So(string(payload), ShouldEqual, "new")
			})
		})

		Convey("When a prefix pattern is invalidated", func() {
			store.Set(ctx, "wimbledon_api:2021", []byte("a"), time.Hour)
			store.Set(ctx, "wimbledon_api:2022", []byte("b"), time.Hour)
			store.Set(ctx, "available_years:", []byte("c"), time.Hour)

			deleted := store.InvalidatePrefix(ctx, "wimbledon_api:*")

			Convey("Then only matching keys are removed and counted", func() {
				So(deleted, ShouldEqual, 2)
				_, ok := store.Get(ctx, "available_years:")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When stats are read after hits and misses", func() {
			store.Set(ctx, "wimbledon_api:2021", []byte("a"), time.Hour)
			_, _ = store.Get(ctx, "wimbledon_api:2021")
			_, _ = store.Get(ctx, "wimbledon_api:1999")

			stats := store.Stats(ctx)

			Convey("Then counters and per-prefix counts reflect the traffic", func() {
				So(stats.Enabled, ShouldBeTrue)
				So(stats.Backend, ShouldEqual, "memory")
				So(stats.Hits, ShouldEqual, 1)
				So(stats.Misses, ShouldEqual, 1)
				So(stats.PrefixCounts["wimbledon_api"], ShouldEqual, 1)
				So(stats.HitRate(), ShouldEqual, 50)
			})
		})

		Convey("When expired entries are swept", func() {
			store.Set(ctx, "a", []byte("1"), time.Minute)
			store.Set(ctx, "b", []byte("2"), time.Hour)
			now = now.Add(10 * time.Minute)

			Convey("Then only the expired ones are dropped", func() {
				So(store.Sweep(), ShouldEqual, 1)
				_, ok := store.Get(ctx, "b")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the store is pinged", func() {
			So(store.Ping(ctx), ShouldBeNil)
		})
	})

	Convey("Given a disabled cache", t, func() {
		ctx := context.Background()
		store := cache.NewNoop()

		Convey("When it is used", func() {
			store.Set(ctx, "k", []byte("v"), time.Hour)
			_, ok := store.Get(ctx, "k")
			stats := store.Stats(ctx)

			Convey("Then it behaves as an always-miss store", func() {
				So(ok, ShouldBeFalse)
				So(stats.Enabled, ShouldBeFalse)
				So(store.Ping(ctx), ShouldNotBeNil)
			})
		})
	})
}
