package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if WIMBLEDON_CONFIG is set
//  3. env (prefix WIMBLEDON_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("WIMBLEDON_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: WIMBLEDON_ADDR, WIMBLEDON_MIN_YEAR, ...
	// Map env keys like WIMBLEDON_MIN_YEAR -> min_year (flat keys).
	envProvider := env.Provider("WIMBLEDON_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "wimbledon_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinYear <= 0:
		return fmt.Errorf("%w: min_year must be positive", ErrInvalidConfig)
	case c.StoreTimeoutMS <= 0:
		return fmt.Errorf("%w: store_timeout_ms must be positive", ErrInvalidConfig)
	case c.RecordTTLSeconds <= 0 || c.YearsTTLSeconds <= 0 || c.HealthTTLSeconds <= 0:
		return fmt.Errorf("%w: cache TTLs must be positive", ErrInvalidConfig)
	case c.LookupPerMinute <= 0 || c.YearsPerMinute <= 0 || c.CacheStatsPerMinute <= 0:
		return fmt.Errorf("%w: per-route limits must be positive", ErrInvalidConfig)
	case c.GlobalPerHour <= 0 || c.GlobalPerDay <= 0:
		return fmt.Errorf("%w: global limits must be positive", ErrInvalidConfig)
	case c.BurstRPS < 0 || c.BurstSize < 0:
		return fmt.Errorf("%w: burst guard values must not be negative", ErrInvalidConfig)
	}
	return nil
}
