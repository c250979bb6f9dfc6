// Package repository holds the process-lifetime dataset cache keyed by source URI.
package repository

import (
	"context"
	"time"

	"github.com/okian/babynames/internal/domain/aggregate"
	"github.com/okian/babynames/internal/domain/model"
)

// Entry is one cached, enriched unified table.
type Entry struct {
	URI      string          `json:"uri"`
	LoadID   string          `json:"load_id"`
	LoadedAt time.Time       `json:"loaded_at"`
	Duration time.Duration   `json:"load_duration"`
	Shape    aggregate.Shape `json:"shape"`
	Rows     []model.Row     `json:"-"`
}

// LoadFunc builds the table for a URI on a cache miss.
type LoadFunc func(ctx context.Context, uri string) ([]model.Row, error)

// Cache stores one immutable table per source URI for the life of the process.
// There is no eviction and no invalidation.
type Cache interface {
	// GetOrLoad returns the cached entry for uri, calling load on a miss.
	// Concurrent misses for the same uri share a single load. Failed loads
	// are not cached.
	GetOrLoad(ctx context.Context, uri string, load LoadFunc) (*Entry, error)

	// Get returns the cached entry or ErrNotLoaded.
	Get(ctx context.Context, uri string) (*Entry, error)

	// Len returns the number of cached tables.
	Len(ctx context.Context) int
}
