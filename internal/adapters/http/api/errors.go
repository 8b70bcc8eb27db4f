package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// opError tags an error with the handler operation that produced it.
type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return e.op + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

// Wrap prefixes err with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

// NewKind reports kind from op.
func NewKind(op string, kind error) error {
	return &opError{op: op, err: kind}
}

// WrapKind reports kind from op with a detail message.
func WrapKind(op string, kind error, format string, args ...any) error {
	return &opError{op: op, err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))}
}
