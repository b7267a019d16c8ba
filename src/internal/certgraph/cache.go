// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgraph

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// DefaultIndexCacheSize is the number of selectors kept by a new IndexCache.
const DefaultIndexCacheSize = 16

// IndexCacheConfig holds configuration for the index cache
type IndexCacheConfig struct {
	MaxSize int // Maximum number of cached selectors (0 = unlimited, but not recommended)
}

// IndexCacheMetrics tracks cache performance and usage
type IndexCacheMetrics struct {
	Size      int64 // Current number of cached selectors
	Hits      int64 // Number of cache hits
	Misses    int64 // Number of cache misses
	Evictions int64 // Number of LRU evictions
}

// IndexCache memoizes chain selector indices per snapshot and scope.
//
// Snapshots are immutable, so an entry stays valid for as long as its
// fingerprint is in use. Entries are evicted least recently used first.
//
// IndexCache is safe for concurrent use by multiple goroutines.
type IndexCache struct {
	mu      sync.Mutex
	entries map[string]*ChainSelector
	order   []string // access order, least recently used first
	maxSize int
	opts    SelectorOptions
	metrics IndexCacheMetrics
}

// NewIndexCache creates a cache whose selectors use opts.
//
// Parameters:
//   - config: Cache size, nil for DefaultIndexCacheSize
//   - opts: Walk bounds applied to every selector built by the cache
//
// Returns:
//   - *IndexCache: Empty cache
func NewIndexCache(config *IndexCacheConfig, opts SelectorOptions) *IndexCache {
	size := DefaultIndexCacheSize
	if config != nil {
		size = config.MaxSize
	}
	if size < 0 {
		size = 0
	}
	return &IndexCache{
		entries: make(map[string]*ChainSelector),
		maxSize: size,
		opts:    opts,
	}
}

// Selector returns the chain selector for the view's scope of snap, building
// and caching it on a miss.
//
// Thread Safety: Safe for concurrent use.
func (c *IndexCache) Selector(snap *Snapshot, view View) *ChainSelector {
	key := snap.Fingerprint + "|" + view.Foundation

	c.mu.Lock()
	defer c.mu.Unlock()

	if sel, ok := c.entries[key]; ok {
		atomic.AddInt64(&c.metrics.Hits, 1)
		c.touch(key)
		return sel
	}
	atomic.AddInt64(&c.metrics.Misses, 1)

	// Evict least recently used entries if cache is full
	for c.maxSize > 0 && len(c.entries) >= c.maxSize && len(c.order) > 0 {
		lru := c.order[0]
		delete(c.entries, lru)
		c.order = c.order[1:]
		atomic.AddInt64(&c.metrics.Evictions, 1)
	}

	sel := NewChainSelector(view.Filter(snap.Nodes), c.opts)
	c.entries[key] = sel
	c.touch(key)
	return sel
}

// touch moves key to the most recently used end.
func (c *IndexCache) touch(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}

// Metrics returns current cache metrics.
func (c *IndexCache) Metrics() IndexCacheMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.metrics
	m.Size = int64(len(c.entries))
	return m
}

// Clear drops every cached selector and resets metrics.
func (c *IndexCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*ChainSelector)
	c.order = nil
	c.metrics = IndexCacheMetrics{}
}

// Stats returns a formatted string with cache statistics
func (c *IndexCache) Stats() string {
	m := c.Metrics()

	hitRate := float64(0)
	total := m.Hits + m.Misses
	if total > 0 {
		hitRate = float64(m.Hits) / float64(total) * 100
	}

	return fmt.Sprintf("Index Cache Statistics:\n"+
		"  Size: %d/%d entries\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)\n"+
		"  Evictions: %d",
		m.Size, c.maxSize,
		hitRate, m.Hits, m.Misses,
		m.Evictions)
}
