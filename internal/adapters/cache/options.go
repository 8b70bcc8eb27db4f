package cache

import (
	"time"

	"github.com/okian/edgeboard/pkg/logger"
)

// MemoryOption applies a configuration option to the Memory cache.
type MemoryOption func(*Memory)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// RedisOption applies a configuration option to the Redis cache.
type RedisOption func(*Redis)

// WithKeyPrefix sets the prefix for every key.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// SourceOption applies a configuration option to the caching Source.
type SourceOption func(*Source)

// WithLogger sets a custom logger for the caching source.
func WithLogger(l logger.Logger) SourceOption {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}
