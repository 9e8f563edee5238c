// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package revocation

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// CacheEntry represents a cached CRL with metadata
type CacheEntry struct {
	Data       []byte    // Raw CRL data
	FetchedAt  time.Time // When this CRL was fetched
	NextUpdate time.Time // When this CRL expires (from CRL.NextUpdate)
	URL        string    // Source URL
}

// isFresh checks if the cached CRL is still usable as evidence
func (entry *CacheEntry) isFresh(now time.Time) bool {
	return entry.NextUpdate.After(now) && entry.FetchedAt.After(now.Add(-24*time.Hour))
}

// isExpired checks if the CRL is past NextUpdate plus a one hour grace period
func (entry *CacheEntry) isExpired(now time.Time) bool {
	return entry.NextUpdate.Before(now.Add(-1 * time.Hour))
}

// CacheConfig holds configuration for the CRL cache
type CacheConfig struct {
	MaxSize         int           // Maximum number of CRLs to cache (0 = unlimited)
	CleanupInterval time.Duration // How often to drop expired entries
}

// CacheMetrics tracks cache performance and usage
type CacheMetrics struct {
	Size        int64 // Current number of cached CRLs
	Hits        int64 // Number of cache hits
	Misses      int64 // Number of cache misses
	Evictions   int64 // Number of LRU evictions
	Cleanups    int64 // Number of expired CRL cleanups
	TotalMemory int64 // Approximate memory usage in bytes
}

// DefaultCacheConfig is used by [NewCache] when given nil.
var DefaultCacheConfig = CacheConfig{
	MaxSize:         100,
	CleanupInterval: 1 * time.Hour,
}

// Cache is an LRU cache of DER CRLs keyed by distribution point URL.
//
// Entries are ordered from least to most recently used; the oldest entry is
// evicted first once MaxSize is reached.
type Cache struct {
	mu      sync.Mutex
	entries *orderedmap.OrderedMap[string, *CacheEntry]
	config  CacheConfig
	now     func() time.Time

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	cleanups  atomic.Int64
	running   atomic.Bool
}

// NewCache creates an empty cache. A nil config selects [DefaultCacheConfig].
func NewCache(config *CacheConfig) *Cache {
	cfg := DefaultCacheConfig
	if config != nil {
		cfg = *config
	}
	if cfg.MaxSize < 0 {
		cfg.MaxSize = 0
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCacheConfig.CleanupInterval
	}

	return &Cache{
		entries: orderedmap.New[string, *CacheEntry](),
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns a copy of the cache configuration.
func (c *Cache) Config() CacheConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Get retrieves a fresh CRL and marks it as most recently used.
// The returned slice is a copy.
func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries.Get(url)
	if !ok || !entry.isFresh(c.now()) {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	_ = c.entries.MoveToBack(url)

	dataCopy := make([]byte, len(entry.Data))
	copy(dataCopy, entry.Data)
	return dataCopy, true
}

// Set stores a CRL, evicting least recently used entries when full.
func (c *Cache) Set(url string, data []byte, nextUpdate time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries.Get(url); !ok {
		for c.config.MaxSize > 0 && c.entries.Len() >= c.config.MaxSize {
			oldest := c.entries.Oldest()
			if oldest == nil {
				break
			}
			c.entries.Delete(oldest.Key)
			c.evictions.Add(1)
		}
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	c.entries.Set(url, &CacheEntry{
		Data:       dataCopy,
		FetchedAt:  c.now(),
		NextUpdate: nextUpdate,
		URL:        url,
	})
	_ = c.entries.MoveToBack(url)
}

// Cleanup removes entries whose NextUpdate is past the grace period and
// returns how many were dropped.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var expired []string
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.isExpired(now) {
			expired = append(expired, pair.Key)
		}
	}
	for _, url := range expired {
		c.entries.Delete(url)
	}

	if len(expired) > 0 {
		c.cleanups.Add(int64(len(expired)))
	}
	return len(expired)
}

// StartCleanup runs [Cache.Cleanup] every CleanupInterval until ctx is done.
// Only one cleanup goroutine runs per cache.
func (c *Cache) StartCleanup(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer c.running.Store(false)

		ticker := time.NewTicker(c.Config().CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Cleanup()
			}
		}
	}()
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = orderedmap.New[string, *CacheEntry]()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	c.cleanups.Store(0)
}

// Metrics returns a snapshot of the cache counters.
func (c *Cache) Metrics() CacheMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	var totalMemory int64
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		totalMemory += int64(len(pair.Value.Data)) + int64(len(pair.Key)) + 24
	}

	return CacheMetrics{
		Size:        int64(c.entries.Len()),
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Cleanups:    c.cleanups.Load(),
		TotalMemory: totalMemory,
	}
}

// Stats returns a human readable summary of [Cache.Metrics].
func (c *Cache) Stats() string {
	metrics := c.Metrics()
	config := c.Config()

	hitRate := float64(0)
	totalRequests := metrics.Hits + metrics.Misses
	if totalRequests > 0 {
		hitRate = float64(metrics.Hits) / float64(totalRequests) * 100
	}

	return fmt.Sprintf("CRL Cache Statistics:\n"+
		"  Size: %d/%d entries\n"+
		"  Memory Usage: %.2f KB\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)\n"+
		"  Evictions: %d\n"+
		"  Cleanups: %d",
		metrics.Size, config.MaxSize,
		float64(metrics.TotalMemory)/1024,
		hitRate, metrics.Hits, metrics.Misses,
		metrics.Evictions,
		metrics.Cleanups)
}
