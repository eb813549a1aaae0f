package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/cache"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/http/api"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/ratelimit"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/app"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/config"
	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opTimeout := time.Duration(cfg.StoreTimeoutMS) * time.Millisecond

	// Shared backends when Redis is configured; process-local stores
	// otherwise. A failed Redis connection falls back rather than aborting:
	// caching and limiting are features, not prerequisites for serving.
	var (
		cacheStore   cache.Store
		counterStore ratelimit.CounterStore
		rdb          *redis.Client
	)
	if cfg.RedisURL != "" {
		opt, perr := redis.ParseURL(cfg.RedisURL)
		if perr != nil {
			log.Warn(ctx, "invalid redis_url; using in-memory stores", logger.Error(perr))
		} else {
			rdb = redis.NewClient(opt)
			pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
			perr = rdb.Ping(pingCtx).Err()
			cancel()
			if perr != nil {
				log.Warn(ctx, "redis unreachable; using in-memory stores", logger.Error(perr))
				_ = rdb.Close()
				rdb = nil
			}
		}
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		cacheStore = cache.NewRedis(rdb,
			cache.WithOpTimeout(opTimeout),
			cache.WithPrefixes(api.KnownPrefixes()...))
		counterStore = ratelimit.NewRedisStore(rdb, ratelimit.WithOpTimeout(opTimeout))
		log.Info(ctx, "using redis backends")
	} else {
		memCache := cache.NewMemory()
		memCache.StartSweeper(ctx)
		memCounters := ratelimit.NewMemoryStore()
		memCounters.StartJanitor(ctx)
		cacheStore = memCache
		counterStore = memCounters
		log.Info(ctx, "using in-memory backends")
	}
	if !cfg.CacheEnabled {
		cacheStore = cache.NewNoop()
		log.Info(ctx, "response caching disabled")
	}

	policy := ratelimit.Policy{
		Routes: map[string][]ratelimit.Limit{
			api.RouteLookup:     {{Window: ratelimit.Minute, Max: cfg.LookupPerMinute}},
			api.RouteYears:      {{Window: ratelimit.Minute, Max: cfg.YearsPerMinute}},
			api.RouteStats:      {{Window: ratelimit.Minute, Max: cfg.YearsPerMinute}},
			api.RouteCacheStats: {{Window: ratelimit.Minute, Max: cfg.CacheStatsPerMinute}},
		},
		Global: []ratelimit.Limit{
			{Window: ratelimit.Hour, Max: cfg.GlobalPerHour},
			{Window: ratelimit.Day, Max: cfg.GlobalPerDay},
		},
	}
	limiter := ratelimit.New(counterStore, policy,
		ratelimit.WithBurstGuard(cfg.BurstRPS, cfg.BurstSize))

	svc, err := app.New(ctx,
		app.WithLogger(log),
		app.WithMinYear(cfg.MinYear))
	if err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, api.Config{
		Cache:     cacheStore,
		Limiter:   limiter,
		Logger:    log,
		RecordTTL: time.Duration(cfg.RecordTTLSeconds) * time.Second,
		YearsTTL:  time.Duration(cfg.YearsTTLSeconds) * time.Second,
		HealthTTL: time.Duration(cfg.HealthTTLSeconds) * time.Second,
		LimitDocs: map[string]any{
			"lookup_per_minute": cfg.LookupPerMinute,
			"years_per_minute":  cfg.YearsPerMinute,
			"per_hour":          cfg.GlobalPerHour,
			"per_day":           cfg.GlobalPerDay,
		},
	})
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
