package handlers

import (
	"fmt"
	"sync"
	"time"
)

const (
	dashboardCacheTTL     = 30 * time.Second
	dashboardCacheMaxKeys = 256
)

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// dashboardCache memoizes derived dashboard results so repeated polls of the
// same month/store view do not recompute over the full order history.
type dashboardCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newDashboardCache() *dashboardCache {
	return &dashboardCache{entries: make(map[string]cacheEntry)}
}

func cacheKey(prefix, store, month, bucket string) string {
	return fmt.Sprintf("%s|%s|%s|%s", prefix, store, month, bucket)
}

func (c *dashboardCache) get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *dashboardCache) set(key string, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= dashboardCacheMaxKeys {
		// Eviction drops everything; entries rebuild on the next poll.
		c.entries = make(map[string]cacheEntry)
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(dashboardCacheTTL)}
}

// invalidate clears the cache, called after order writes.
func (c *dashboardCache) invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
