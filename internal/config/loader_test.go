package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MinYear, convey.ShouldEqual, 2014)
				convey.So(cfg.RecordTTLSeconds, convey.ShouldEqual, 3600)
				convey.So(cfg.YearsTTLSeconds, convey.ShouldEqual, 7200)
				convey.So(cfg.HealthTTLSeconds, convey.ShouldEqual, 60)
				convey.So(cfg.LookupPerMinute, convey.ShouldEqual, 30)
				convey.So(cfg.GlobalPerHour, convey.ShouldEqual, 50)
				convey.So(cfg.GlobalPerDay, convey.ShouldEqual, 200)
				convey.So(cfg.RedisURL, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("WIMBLEDON_ADDR", ":9090")
			_ = os.Setenv("WIMBLEDON_MIN_YEAR", "1877")
			_ = os.Setenv("WIMBLEDON_LOOKUP_PER_MINUTE", "60")
			_ = os.Setenv("WIMBLEDON_REDIS_URL", "redis://localhost:6379/0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MinYear, convey.ShouldEqual, 1877)
				convey.So(cfg.LookupPerMinute, convey.ShouldEqual, 60)
				convey.So(cfg.RedisURL, convey.ShouldEqual, "redis://localhost:6379/0")
				convey.So(cfg.GlobalPerDay, convey.ShouldEqual, 200)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":7070"
min_year: 1877
record_ttl_seconds: 600
years_per_minute: 20
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("WIMBLEDON_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MinYear, convey.ShouldEqual, 1877)
				convey.So(cfg.RecordTTLSeconds, convey.ShouldEqual, 600)
				convey.So(cfg.YearsPerMinute, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When env vars and file disagree", func() {
			tmpFile := createTempConfigFile(t, "addr: \":7070\"\n")
			_ = os.Setenv("WIMBLEDON_CONFIG", tmpFile)
			_ = os.Setenv("WIMBLEDON_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars take precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When a value fails validation", func() {
			_ = os.Setenv("WIMBLEDON_MIN_YEAR", "-5")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with the invalid-config kind", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"WIMBLEDON_CONFIG",
		"WIMBLEDON_ADDR",
		"WIMBLEDON_MIN_YEAR",
		"WIMBLEDON_LOOKUP_PER_MINUTE",
		"WIMBLEDON_REDIS_URL",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
