package dashboard

import (
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML per refresh revision.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// maxChartEntries bounds the cache when many keys are stored within one TTL.
const maxChartEntries = 64

// ChartCache is an in-memory TTL cache for rendered charts. Expired entries
// are dropped on read, on every store and by Prune.
type ChartCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedChart
}

type cachedChart struct {
	html    string
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		entries: make(map[string]cachedChart),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

func (c *ChartCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return "", false
	}
	return entry.html, true
}

func (c *ChartCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(now)
	if _, ok := c.entries[key]; !ok && len(c.entries) >= maxChartEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = cachedChart{
		html:    html,
		expires: now.Add(c.ttl),
	}
}

func (c *ChartCache) pruneLocked(now time.Time) int {
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *ChartCache) evictOldestLocked() {
	var (
		oldest  string
		expires time.Time
	)
	for key, entry := range c.entries {
		if oldest == "" || entry.expires.Before(expires) {
			oldest, expires = key, entry.expires
		}
	}
	delete(c.entries, oldest)
}

// Prune drops every expired entry and returns how many were removed.
func (c *ChartCache) Prune() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pruneLocked(time.Now())
}

// Len returns the number of cached entries, expired or not.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
