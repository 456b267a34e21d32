package application

import (
	"context"
	"sync"
	"time"

	"github.com/dltoledo/pautapanel/internal/domain/model"
	"github.com/dltoledo/pautapanel/internal/metrics"
)

// fetchFunc loads a fresh table from the remote store.
type fetchFunc func(ctx context.Context) (model.Table, error)

// TableCache memoizes the last fetched table for a bounded time window.
// Exactly one entry exists; it is re-created lazily on the next GetOrFetch
// after expiry or invalidation. The clock is injected so tests can advance
// time deterministically. All state transitions happen under the mutex,
// including the fetch itself, so concurrent lookups cannot dogpile the
// remote store.
type TableCache struct {
	mu      sync.Mutex
	fetch   fetchFunc
	ttl     time.Duration
	now     func() time.Time
	metrics *metrics.Metrics

	entry *cacheEntry
}

type cacheEntry struct {
	table     model.Table
	fetchedAt time.Time
}

// NewTableCache creates a cache in front of fetch with the given TTL.
func NewTableCache(fetch fetchFunc, ttl time.Duration, now func() time.Time, m *metrics.Metrics) *TableCache {
	return &TableCache{
		fetch:   fetch,
		ttl:     ttl,
		now:     now,
		metrics: m,
	}
}

// GetOrFetch returns the cached table when it is younger than the TTL,
// otherwise fetches a fresh one and caches it. Fetch errors propagate
// unchanged and are never cached.
func (c *TableCache) GetOrFetch(ctx context.Context) (model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil && c.now().Sub(c.entry.fetchedAt) < c.ttl {
		c.metrics.CacheHits.Inc()
		return c.entry.table, nil
	}

	c.metrics.CacheMisses.Inc()

	table, err := c.fetch(ctx)
	if err != nil {
		return model.Table{}, err
	}

	c.entry = &cacheEntry{table: table, fetchedAt: c.now()}
	return table, nil
}

// Invalidate discards any cached entry. The next GetOrFetch always fetches.
func (c *TableCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}
