package repository

import "time"

// Option applies a configuration option to the MemoryCache.
type Option func(*MemoryCache)

// WithClock overrides the time source used for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides how load identifiers are minted.
func WithIDGenerator(gen func() string) Option {
	return func(c *MemoryCache) {
		if gen != nil {
			c.newID = gen
		}
	}
}
