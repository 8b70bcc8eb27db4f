package datasource

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotFound          = errors.New("dataset not found")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrDecode            = errors.New("decode dataset failed")
	ErrInvalidDataset    = errors.New("invalid dataset id")
	ErrFetch             = errors.New("fetch dataset failed")
)

// Failure is a fetch error tagged with whether trying again can help.
type Failure struct {
	Dataset   string
	Retryable bool
	Err       error
}

func (f *Failure) Error() string {
	kind := "terminal"
	if f.Retryable {
		kind = "retryable"
	}
	return fmt.Sprintf("%s: %s: %v", kind, f.Dataset, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// IsRetryable reports whether err is a retryable Failure.
func IsRetryable(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Retryable
}

// Kind labels err for metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrDecode), errors.Is(err, ErrInvalidDataset):
		return "invalid"
	case IsRetryable(err):
		return "retryable"
	default:
		return "terminal"
	}
}

func retryable(dataset string, err error) error {
	return &Failure{Dataset: dataset, Retryable: true, Err: err}
}

func terminal(dataset string, err error) error {
	return &Failure{Dataset: dataset, Err: err}
}
