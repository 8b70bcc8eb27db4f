package cache

import (
	"context"
	"errors"
	"time"

	"github.com/okian/edgeboard/internal/adapters/datasource"
	"github.com/okian/edgeboard/internal/domain/table"
	"github.com/okian/edgeboard/pkg/logger"
	"github.com/okian/edgeboard/pkg/metrics"
)

// Source serves datasets from a cache, fetching and storing on a miss.
// Cache errors never fail a fetch; they fall through to the wrapped source.
type Source struct {
	next   datasource.Source
	cache  Cache
	ttl    time.Duration
	logger logger.Logger
}

// NewSource wraps next with c.
func NewSource(next datasource.Source, c Cache, ttl time.Duration, opts ...SourceOption) *Source {
	s := &Source{next: next, cache: c, ttl: ttl, logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements datasource.Source.
func (s *Source) Fetch(ctx context.Context, id string) (*table.Table, error) {
	t, err := s.cache.Get(ctx, id)
	switch {
	case err == nil:
		metrics.RecordCacheHit(s.cache.Backend())
		return t, nil
	case errors.Is(err, ErrMiss):
		metrics.RecordCacheMiss(s.cache.Backend())
	default:
		metrics.RecordCacheError(s.cache.Backend(), "get")
		s.logger.Warn(ctx, "cache get failed", logger.String("dataset", id), logger.Error(err))
	}
	return s.Refresh(ctx, id)
}

// Refresh fetches id from the wrapped source and stores it, ignoring any cached copy.
func (s *Source) Refresh(ctx context.Context, id string) (*table.Table, error) {
	t, err := s.next.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, id, t, s.ttl); err != nil {
		metrics.RecordCacheError(s.cache.Backend(), "set")
		s.logger.Warn(ctx, "cache set failed", logger.String("dataset", id), logger.Error(err))
	}
	return t, nil
}
