// Package metrics provides Prometheus metrics for the Wimbledon finals API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns the metric vectors and the registry they live in.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Cache behaviour
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheBackendErrors *prometheus.CounterVec

	// Rate limiting
	rateLimitDecisions *prometheus.CounterVec

	// Dataset
	datasetYears prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry sets a custom Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a Manager and registers all metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "wimbledon",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := func(name, help string, labels ...string) *prometheus.CounterVec {
		v := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		}, labels)
		m.registry.MustRegister(v)
		return v
	}

	m.httpRequests = factory("http_requests_total",
		"HTTP requests by endpoint, method and status code.",
		"endpoint", "method", "status")

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method"})
	m.registry.MustRegister(m.httpRequestDuration)

	m.cacheHits = factory("cache_hits_total",
		"Cache hits by key prefix.", "prefix")
	m.cacheMisses = factory("cache_misses_total",
		"Cache misses by key prefix.", "prefix")
	m.cacheBackendErrors = factory("cache_backend_errors_total",
		"Cache backend failures by operation; the cache degrades to a miss on each.",
		"op")

	m.rateLimitDecisions = factory("ratelimit_decisions_total",
		"Rate limiter admission decisions by route.", "route", "decision")

	m.datasetYears = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "dataset_years",
		Help:      "Number of years covered by the loaded dataset.",
	})
	m.registry.MustRegister(m.datasetYears)
}

// Registry returns the manager's registry for scraping.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// defaultManager backs the package-level helpers used across the service.
var defaultManager = NewManager()

// GetRegistry returns the default registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return defaultManager.Registry()
}

// RecordHTTPRequest counts one request against an endpoint.
func RecordHTTPRequest(endpoint, method, status string) {
	defaultManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	defaultManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

// RecordCacheHit counts a cache hit for a key prefix.
func RecordCacheHit(prefix string) {
	defaultManager.cacheHits.WithLabelValues(prefix).Inc()
}

// RecordCacheMiss counts a cache miss for a key prefix.
func RecordCacheMiss(prefix string) {
	defaultManager.cacheMisses.WithLabelValues(prefix).Inc()
}

// RecordCacheBackendError counts a swallowed cache backend failure.
func RecordCacheBackendError(op string) {
	defaultManager.cacheBackendErrors.WithLabelValues(op).Inc()
}

// RecordRateLimitDecision counts an admission decision for a route.
func RecordRateLimitDecision(route, decision string) {
	defaultManager.rateLimitDecisions.WithLabelValues(route, decision).Inc()
}

// UpdateDatasetYears records the dataset size at startup.
func UpdateDatasetYears(n int) {
	defaultManager.datasetYears.Set(float64(n))
}
