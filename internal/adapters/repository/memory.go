package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/okian/babynames/internal/domain/aggregate"
	"github.com/okian/babynames/pkg/metrics"
)

// MemoryCache is the in-memory Cache. Entries are written once and shared
// read-only by every caller.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	group   singleflight.Group

	now   func() time.Time
	newID func() string
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache constructs an empty cache.
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*Entry),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, uri string) (*Entry, error) {
	c.mu.RLock()
	e, ok := c.entries[uri]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, uri)
	}
	return e, nil
}

// GetOrLoad implements Cache. The shared load runs on a context detached
// from the caller's cancellation; a caller whose ctx ends stops waiting
// without failing the others.
func (c *MemoryCache) GetOrLoad(ctx context.Context, uri string, load LoadFunc) (*Entry, error) {
	if uri == "" {
		return nil, ErrEmptyKey
	}
	if e, err := c.Get(ctx, uri); err == nil {
		metrics.RecordCacheHit()
		return e, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(uri, func() (any, error) {
		// A load that finished between Get and DoChan already stored the entry.
		if e, err := c.Get(loadCtx, uri); err == nil {
			return e, nil
		}
		metrics.RecordCacheMiss()

		start := c.now()
		rows, err := load(loadCtx, uri)
		if err != nil {
			return nil, err
		}
		e := &Entry{
			URI:      uri,
			LoadID:   c.newID(),
			LoadedAt: c.now(),
			Shape:    aggregate.Describe(rows),
			Rows:     rows,
		}
		e.Duration = e.LoadedAt.Sub(start)

		c.mu.Lock()
		c.entries[uri] = e
		n := len(c.entries)
		c.mu.Unlock()
		metrics.UpdateCacheEntries(n)
		return e, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for %s: %w", uri, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Entry), nil
	}
}

// Len implements Cache.
func (c *MemoryCache) Len(_ context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
