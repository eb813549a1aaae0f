package cache

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrDisabled    = errors.New("cache disabled")
	ErrUnavailable = errors.New("cache backend unavailable")
)
