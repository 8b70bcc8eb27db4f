// Package config defines service configuration structures and loading hooks.
package config

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Source backends.
const (
	SourceS3   = "s3"
	SourceFile = "file"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Source selects where datasets are read from: s3 or file.
	Source string `koanf:"source"`
	// S3Bucket, S3Region and S3Prefix locate dataset objects when Source is s3.
	S3Bucket string `koanf:"s3_bucket"`
	S3Region string `koanf:"s3_region"`
	S3Prefix string `koanf:"s3_prefix"`
	// DataDir is the dataset root when Source is file.
	DataDir string `koanf:"data_dir"`
	// FetchMaxRetries bounds fetch attempts per dataset.
	FetchMaxRetries int `koanf:"fetch_max_retries"`

	// CacheBackend is memory or redis.
	CacheBackend string `koanf:"cache_backend"`
	// CacheTTLSeconds is how long a fetched dataset stays fresh.
	CacheTTLSeconds int    `koanf:"cache_ttl_seconds"`
	RedisAddr       string `koanf:"redis_addr"`
	RedisDB         int    `koanf:"redis_db"`

	// RefreshIntervalSeconds re-fetches the dataset catalog in the background. 0 disables it.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`
	// RefreshWorkers sets how many datasets are re-fetched concurrently.
	RefreshWorkers int `koanf:"refresh_workers"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		Source:                 SourceFile,
		S3Region:               "us-east-1",
		DataDir:                "./data",
		FetchMaxRetries:        3,
		CacheBackend:           CacheMemory,
		CacheTTLSeconds:        3600,
		RedisAddr:              "localhost:6379",
		RefreshIntervalSeconds: 0,
		RefreshWorkers:         4,
	}
}
