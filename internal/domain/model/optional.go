// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may be absent. Absent is distinct from the zero value:
// a missing grade stays missing and is never read as 0.
type Optional[T any] struct {
	v  T
	ok bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] { return Optional[T]{v: v, ok: true} }

// None returns an absent value.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.v, o.ok }

// Valid reports whether the value is present.
func (o Optional[T]) Valid() bool { return o.ok }

// Or returns the value, or def when absent.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// IsZero makes absent values eligible for omitzero.
func (o Optional[T]) IsZero() bool { return !o.ok }

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON treats null as absent.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Float is the common case of an optional metric.
type Float = Optional[float64]
