package repository

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrNotLoaded = errors.New("dataset not loaded")
	ErrEmptyKey  = errors.New("empty cache key")
)
