package datasource

import (
	"strings"
	"time"

	"github.com/okian/edgeboard/pkg/logger"
)

// S3Option applies a configuration option to the S3Source.
type S3Option func(*S3Source)

// WithPrefix sets the key prefix prepended to dataset ids. A trailing slash is added if missing.
func WithPrefix(prefix string) S3Option {
	return func(s *S3Source) {
		prefix = strings.Trim(prefix, "/")
		if prefix != "" {
			s.prefix = prefix + "/"
		}
	}
}

// WithS3Logger sets a custom logger for the S3 source.
func WithS3Logger(l logger.Logger) S3Option {
	return func(s *S3Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// RetryOption applies a configuration option to Retrying.
type RetryOption func(*Retrying)

// WithMaxTries bounds the total attempts per fetch.
func WithMaxTries(n int) RetryOption {
	return func(r *Retrying) {
		if n > 0 {
			r.maxTries = uint(n)
		}
	}
}

// WithIntervals sets the first and the largest wait between attempts.
func WithIntervals(initial, maxWait time.Duration) RetryOption {
	return func(r *Retrying) {
		if initial > 0 && maxWait >= initial {
			r.initialInterval = initial
			r.maxInterval = maxWait
		}
	}
}

// WithRetryLogger sets a custom logger for the retrying source.
func WithRetryLogger(l logger.Logger) RetryOption {
	return func(r *Retrying) {
		if l != nil {
			r.logger = l
		}
	}
}
