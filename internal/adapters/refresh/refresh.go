// Package refresh keeps cached datasets warm by re-fetching the catalog on a schedule.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/edgeboard/internal/domain/table"
	"github.com/okian/edgeboard/pkg/logger"
	"github.com/okian/edgeboard/pkg/metrics"
)

const (
	defaultWorkers  = 4
	defaultInterval = 15 * time.Minute
)

// Refresher re-reads one dataset past any cached copy.
type Refresher interface {
	Refresh(ctx context.Context, id string) (*table.Table, error)
}

// Pool runs refresh cycles over a fixed dataset list with a bounded set of workers.
type Pool struct {
	target   Refresher
	datasets []string
	workers  int
	interval time.Duration

	shutdown chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	logger logger.Logger
}

// NewPool creates a refresh pool for datasets.
func NewPool(target Refresher, datasets []string, opts ...Option) *Pool {
	p := &Pool{
		target:   target,
		datasets: append([]string(nil), datasets...),
		workers:  defaultWorkers,
		interval: defaultInterval,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run warms every dataset once, then repeats each interval until ctx is
// canceled or Shutdown is called.
func (p *Pool) Run(ctx context.Context) {
	defer close(p.done)

	p.Cycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.Cycle(ctx)
		}
	}
}

// Cycle refreshes every dataset once and returns the number that failed.
func (p *Pool) Cycle(ctx context.Context) int {
	start := time.Now()

	jobs := make(chan string)
	var failures atomic.Int64
	var wg sync.WaitGroup

	n := min(p.workers, len(p.datasets))
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if _, err := p.target.Refresh(ctx, id); err != nil {
					failures.Add(1)
					p.logger.Error(ctx, "dataset refresh failed", logger.String("dataset", id), logger.Error(err))
				}
			}
		}()
	}

feed:
	for _, id := range p.datasets {
		select {
		case jobs <- id:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	failed := int(failures.Load())
	elapsed := time.Since(start)
	metrics.RecordRefreshCycle(float64(elapsed.Milliseconds()), failed)
	p.logger.Info(ctx, "refresh cycle complete",
		logger.Int("datasets", len(p.datasets)),
		logger.Int("failures", failed),
		logger.Duration("elapsed", elapsed),
	)
	return failed
}

// Shutdown stops the loop and waits for an in-flight cycle to finish.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.shutdown) })

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "refresh shutdown timed out")
		return fmt.Errorf("refresh shutdown timed out: %w", ctx.Err())
	}
}
