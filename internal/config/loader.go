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

const (
	envPrefix  = "EDGEBOARD_"
	envFileVar = "EDGEBOARD_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if EDGEBOARD_CONFIG is set
//  3. env (prefix EDGEBOARD_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// EDGEBOARD_CACHE_TTL_SECONDS -> cache_ttl_seconds. Underscores are kept
	// to match the flat koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Source != SourceS3 && c.Source != SourceFile:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	case c.Source == SourceS3 && strings.TrimSpace(c.S3Bucket) == "":
		return fmt.Errorf("%w: s3_bucket is required when source is s3", ErrInvalidConfig)
	case c.Source == SourceFile && strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir is required when source is file", ErrInvalidConfig)
	case c.CacheBackend != CacheMemory && c.CacheBackend != CacheRedis:
		return fmt.Errorf("%w: unknown cache_backend %q", ErrInvalidConfig, c.CacheBackend)
	case c.CacheTTLSeconds <= 0:
		return fmt.Errorf("%w: cache_ttl_seconds must be positive", ErrInvalidConfig)
	case c.FetchMaxRetries < 1:
		return fmt.Errorf("%w: fetch_max_retries must be at least 1", ErrInvalidConfig)
	case c.RefreshIntervalSeconds < 0:
		return fmt.Errorf("%w: refresh_interval_seconds must not be negative", ErrInvalidConfig)
	}
	return nil
}
