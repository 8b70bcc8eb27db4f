package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/edgeboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Source, convey.ShouldEqual, config.SourceFile)
			convey.So(cfg.CacheBackend, convey.ShouldEqual, config.CacheMemory)
			convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 3600)
			convey.So(cfg.FetchMaxRetries, convey.ShouldEqual, 3)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "./data")
				convey.So(cfg.RefreshWorkers, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("EDGEBOARD_ADDR", ":8080")
			_ = os.Setenv("EDGEBOARD_SOURCE", "s3")
			_ = os.Setenv("EDGEBOARD_S3_BUCKET", "nfl-models")
			_ = os.Setenv("EDGEBOARD_CACHE_TTL_SECONDS", "600")
			_ = os.Setenv("EDGEBOARD_FETCH_MAX_RETRIES", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceS3)
				convey.So(cfg.S3Bucket, convey.ShouldEqual, "nfl-models")
				convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 600)
				convey.So(cfg.FetchMaxRetries, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with a YAML file and env on top", func() {
			yamlContent := `
# local dev
addr: ":9090"
source: file
data_dir: /srv/nfl
cache_backend: redis
redis_addr: "redis:6379"
refresh_interval_seconds: 900
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("EDGEBOARD_CONFIG", tmpFile)
			_ = os.Setenv("EDGEBOARD_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values load and env wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/nfl")
				convey.So(cfg.CacheBackend, convey.ShouldEqual, config.CacheRedis)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "redis:6379")
				convey.So(cfg.RefreshIntervalSeconds, convey.ShouldEqual, 900)
				convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 3600)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("EDGEBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("EDGEBOARD_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("EDGEBOARD_CACHE_TTL_SECONDS", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given configs that fail validation", t, func() {
		cases := map[string]func(c *config.Config){
			"empty addr":            func(c *config.Config) { c.Addr = "" },
			"unknown source":        func(c *config.Config) { c.Source = "ftp" },
			"s3 without bucket":     func(c *config.Config) { c.Source = config.SourceS3 },
			"file without dir":      func(c *config.Config) { c.DataDir = " " },
			"unknown cache backend": func(c *config.Config) { c.CacheBackend = "memcached" },
			"zero ttl":              func(c *config.Config) { c.CacheTTLSeconds = 0 },
			"zero retries":          func(c *config.Config) { c.FetchMaxRetries = 0 },
			"negative refresh":      func(c *config.Config) { c.RefreshIntervalSeconds = -1 },
		}

		for name, mutate := range cases {
			convey.Convey("When the config has "+name, func() {
				cfg := config.New()
				mutate(cfg)
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given an empty addr from env", t, func() {
		clearConfigEnvVars()
		_ = os.Setenv("EDGEBOARD_ADDR", "")
		defer clearConfigEnvVars()

		cfg, err := config.Load(context.Background())

		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
		convey.So(cfg, convey.ShouldBeNil)
	})
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "edgeboard-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	_ = f.Close()
	return f.Name()
}

func clearConfigEnvVars() {
	for _, k := range []string{
		"EDGEBOARD_CONFIG", "EDGEBOARD_ADDR", "EDGEBOARD_SOURCE", "EDGEBOARD_S3_BUCKET",
		"EDGEBOARD_CACHE_TTL_SECONDS", "EDGEBOARD_FETCH_MAX_RETRIES", "EDGEBOARD_CACHE_BACKEND",
	} {
		_ = os.Unsetenv(k)
	}
}
