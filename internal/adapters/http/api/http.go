// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/cache"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/ratelimit"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/record"
	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/validate"
	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/logger"
	"github.com/prachi-pandey-github/rest-api-wimbledon/pkg/metrics"
)

// Service identity reported in response metadata.
const (
	serviceName = "wimbledon-api"
	apiVersion  = "1.0.0"
	dataSource  = "Wimbledon Championships Records"
)

// Cache key prefixes, one per endpoint class.
const (
	prefixRecord = "wimbledon_api"
	prefixSimple = "wimbledon_simple"
	prefixYears  = "available_years"
	prefixHealth = "health"
)

// Route names used for rate-limit policies.
const (
	RouteLookup     = "lookup"
	RouteYears      = "years"
	RouteStats      = "stats"
	RouteCacheStats = "cache_stats"
)

// KnownPrefixes lists every cache key prefix the service writes.
func KnownPrefixes() []string {
	return []string{prefixRecord, prefixSimple, prefixYears, prefixHealth}
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service wiring.
type Dependencies interface {
	Lookup(year int) (record.Record, bool)
	Years() []int
	Range() (earliest, latest int)
	Played() int
	TournamentStats() record.Stats
	ValidateYear(query url.Values) (int, *validate.Failure)
	MinYear() int
}

// Config carries the cross-cutting collaborators and per-class TTLs the
// route chains are built from.
type Config struct {
	Cache   cache.Store
	Limiter *ratelimit.Limiter
	Logger  logger.Logger

	RecordTTL time.Duration
	YearsTTL  time.Duration
	HealthTTL time.Duration

	// LimitDocs is the rate-limit policy summary advertised on /api/docs.
	LimitDocs map[string]any
}

// Server wires HTTP routes for the finals API.
type Server struct {
	cfg Config

	finalHandler      *FinalHandler
	yearsHandler      *YearsHandler
	statsHandler      *StatsHandler
	healthHandler     *HealthHandler
	docsHandler       *DocsHandler
	cacheAdminHandler *CacheAdminHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, cfg Config) *Server {
	return &Server{
		cfg:               cfg,
		finalHandler:      NewFinalHandler(deps),
		yearsHandler:      NewYearsHandler(deps),
		statsHandler:      NewStatsHandler(deps),
		healthHandler:     NewHealthHandler(cfg.Cache, cfg),
		docsHandler:       NewDocsHandler(deps, cfg),
		cacheAdminHandler: NewCacheAdminHandler(cfg.Cache, cfg),
	}
}

// Register attaches all HTTP routes to mux. Each route gets the middleware
// chain it needs: observability for everything, admission control for the
// data endpoints, response caching for the cacheable classes.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	limited := func(route string, next http.HandlerFunc) http.HandlerFunc {
		return RateLimitMiddleware(s.cfg.Limiter, route, next)
	}
	cached := func(prefix string, ttl time.Duration, next http.HandlerFunc) http.HandlerFunc {
		return CacheMiddleware(s.cfg.Cache, prefix, ttl, next)
	}

	mux.HandleFunc("/health", Instrument("health", s.cfg.Logger,
		cached(prefixHealth, s.cfg.HealthTTL, s.healthHandler.HandleHealth)))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/docs", Instrument("docs", s.cfg.Logger, s.docsHandler.HandleDocs))

	mux.HandleFunc("/wimbledon", Instrument("wimbledon_simple", s.cfg.Logger,
		limited(RouteLookup, cached(prefixSimple, s.cfg.RecordTTL, s.finalHandler.HandleSimple))))
	mux.HandleFunc("/api/wimbledon", Instrument("wimbledon", s.cfg.Logger,
		limited(RouteLookup, cached(prefixRecord, s.cfg.RecordTTL, s.finalHandler.HandleFull))))
	mux.HandleFunc("/api/wimbledon/years", Instrument("years", s.cfg.Logger,
		limited(RouteYears, cached(prefixYears, s.cfg.YearsTTL, s.yearsHandler.HandleYears))))
	mux.HandleFunc("/api/wimbledon/stats", Instrument("stats", s.cfg.Logger,
		limited(RouteStats, s.statsHandler.HandleStats)))

	mux.HandleFunc("/api/cache/stats", Instrument("cache_stats", s.cfg.Logger,
		limited(RouteCacheStats, s.cacheAdminHandler.HandleStats)))
	mux.HandleFunc("/api/cache/clear", Instrument("cache_clear", s.cfg.Logger,
		s.cacheAdminHandler.HandleClear))

	// Everything else, including "/", lands here.
	mux.HandleFunc("/", Instrument("root", s.cfg.Logger, handleRoot))
}

// availableEndpoints is advertised on the index and on route misses.
var availableEndpoints = []string{
	"GET /health",
	"GET /api/docs",
	"GET /wimbledon?year=YYYY",
	"GET /api/wimbledon?year=YYYY",
	"GET /api/wimbledon/years",
	"GET /api/wimbledon/stats",
	"GET /api/cache/stats",
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeRouteNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":             "Welcome to the Wimbledon API!",
		"available_endpoints": availableEndpoints,
	})
}

// metadata is the envelope block attached to every successful data response.
type metadata struct {
	RetrievedAt string `json:"retrieved_at"`
	DataSource  string `json:"data_source"`
	APIVersion  string `json:"api_version"`
}

func newMetadata() metadata {
	return metadata{
		RetrievedAt: time.Now().UTC().Format(time.RFC3339),
		DataSource:  dataSource,
		APIVersion:  apiVersion,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
