// Package cache keeps fetched dataset tables for a fixed TTL.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/okian/edgeboard/internal/domain/table"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMiss   = errors.New("cache miss")
	ErrClosed = errors.New("cache closed")
)

// Cache stores tables by dataset id.
type Cache interface {
	// Get returns ErrMiss when the id is absent or expired.
	Get(ctx context.Context, id string) (*table.Table, error)
	Set(ctx context.Context, id string, t *table.Table, ttl time.Duration) error
	// Backend names the implementation for metrics.
	Backend() string
}
