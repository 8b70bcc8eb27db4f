package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/okian/edgeboard/internal/domain/table"
	"github.com/okian/edgeboard/pkg/logger"
	"github.com/okian/edgeboard/pkg/metrics"
)

// Default retry configuration constants.
const (
	defaultMaxTries        = 3
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
)

// Retrying retries retryable failures of the wrapped source with exponential
// backoff. Terminal failures return at once.
type Retrying struct {
	next            Source
	maxTries        uint
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          logger.Logger
}

// NewRetrying wraps next.
func NewRetrying(next Source, opts ...RetryOption) *Retrying {
	r := &Retrying{
		next:            next,
		maxTries:        defaultMaxTries,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retrying) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	return b
}

// Fetch implements Source.
func (r *Retrying) Fetch(ctx context.Context, id string) (*table.Table, error) {
	start := time.Now()
	attempt := 0
	t, err := backoff.Retry(ctx, func() (*table.Table, error) {
		attempt++
		t, err := r.next.Fetch(ctx, id)
		if err != nil && !IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return t, err
	},
		backoff.WithBackOff(r.backOff()),
		backoff.WithMaxTries(r.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			metrics.RecordDatasetFetchRetry(id)
			r.logger.Warn(ctx, "retrying dataset fetch",
				logger.String("dataset", id),
				logger.Int("attempt", attempt),
				logger.Duration("wait", wait),
				logger.Error(err),
			)
		}),
	)
	if err != nil {
		var f *Failure
		if !errors.As(err, &f) {
			err = terminal(id, err)
		}
		metrics.RecordDatasetFetchError(id, Kind(err))
		r.logger.Error(ctx, "dataset fetch failed",
			logger.String("dataset", id),
			logger.Int("attempts", attempt),
			logger.Error(err),
		)
		return nil, err
	}

	metrics.RecordDatasetFetch(id, float64(time.Since(start).Milliseconds()))
	metrics.UpdateDatasetRows(id, t.Len())
	r.logger.Debug(ctx, "dataset fetched",
		logger.String("dataset", id),
		logger.Int("rows", t.Len()),
		logger.Int("attempts", attempt),
	)
	return t, nil
}
