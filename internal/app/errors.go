package app

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrLoad wraps any dataset fetch failure. The datasource error stays in the chain.
	ErrLoad = errors.New("failed to load dataset")
)
