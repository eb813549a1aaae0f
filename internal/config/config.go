// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration. The core never reads the process
// environment directly; everything arrives through this structure.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MinYear is the earliest year served. Deployments of this service have
	// shipped with both 1877 and 2014; it is a deployment choice.
	MinYear int `koanf:"min_year"`

	// CacheEnabled turns response caching off entirely when false.
	CacheEnabled bool `koanf:"cache_enabled"`

	// RedisURL selects the shared cache and counter backend. Empty means
	// process-local in-memory stores.
	RedisURL string `koanf:"redis_url"`

	// StoreTimeoutMS bounds each cache or counter backend round trip.
	StoreTimeoutMS int `koanf:"store_timeout_ms"`

	// Cache TTLs per endpoint class, in seconds.
	RecordTTLSeconds int `koanf:"record_ttl_seconds"`
	YearsTTLSeconds  int `koanf:"years_ttl_seconds"`
	HealthTTLSeconds int `koanf:"health_ttl_seconds"`

	// Per-route and global rate limits.
	LookupPerMinute     int `koanf:"lookup_per_minute"`
	YearsPerMinute      int `koanf:"years_per_minute"`
	CacheStatsPerMinute int `koanf:"cache_stats_per_minute"`
	GlobalPerHour       int `koanf:"global_per_hour"`
	GlobalPerDay        int `koanf:"global_per_day"`

	// Process-wide burst guard; zero disables it.
	BurstRPS  float64 `koanf:"burst_rps"`
	BurstSize int     `koanf:"burst_size"`
}

// New creates a Config with defaults. The limit and TTL defaults mirror the
// service's long-standing production values.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8080",
		MinYear:             2014,
		CacheEnabled:        true,
		StoreTimeoutMS:      150,
		RecordTTLSeconds:    3600,
		YearsTTLSeconds:     7200,
		HealthTTLSeconds:    60,
		LookupPerMinute:     30,
		YearsPerMinute:      10,
		CacheStatsPerMinute: 10,
		GlobalPerHour:       50,
		GlobalPerDay:        200,
	}
}
