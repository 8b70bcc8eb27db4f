package refresh

import (
	"time"

	"github.com/okian/edgeboard/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkers sets how many datasets refresh concurrently.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithInterval sets the delay between cycles.
func WithInterval(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
