package network

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultMaxAge is how long a response without caching headers stays fresh.
const DefaultMaxAge = 5 * time.Minute

// CacheEntry is a cached response.
type CacheEntry struct {
	Response *Response
	CachedAt time.Time
	MaxAge   time.Duration
	Expires  time.Time
}

// IsExpired reports whether the entry is stale at now.
func (e *CacheEntry) IsExpired(now time.Time) bool {
	if !e.Expires.IsZero() {
		return now.After(e.Expires)
	}
	return now.Sub(e.CachedAt) > e.MaxAge
}

// Cache is an in-memory response cache keyed by URL. When full, the
// oldest entry is evicted.
type Cache struct {
	entries map[string]*CacheEntry
	maxSize int
	now     func() time.Time
	mu      sync.RWMutex
}

// NewCache creates a cache holding up to maxSize entries (100 if <= 0).
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the fresh entry for url. Stale entries are dropped.
func (c *Cache) Get(url string) (*CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[url]
	if !ok {
		return nil, false
	}
	if entry.IsExpired(c.now()) {
		delete(c.entries, url)
		return nil, false
	}
	return entry, true
}

// Set stores resp under url, honoring Cache-Control no-store and max-age
// and the Expires header.
func (c *Cache) Set(url string, resp *Response) {
	directives := parseCacheControl(resp.Headers.Get("Cache-Control"))
	if _, ok := directives["no-store"]; ok {
		return
	}
	entry := &CacheEntry{
		Response: resp,
		CachedAt: c.now(),
		MaxAge:   DefaultMaxAge,
	}
	if v, ok := directives["max-age"]; ok {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			entry.MaxAge = time.Duration(seconds) * time.Second
		}
	} else if expires := resp.Headers.Get("Expires"); expires != "" {
		if t, err := http.ParseTime(expires); err == nil {
			entry.Expires = t
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[url]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[url] = entry
}

// Size returns the number of entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*CacheEntry)
}

// evictOldest must be called with c.mu held.
func (c *Cache) evictOldest() {
	var oldest string
	var oldestTime time.Time
	for url, entry := range c.entries {
		if oldest == "" || entry.CachedAt.Before(oldestTime) {
			oldest, oldestTime = url, entry.CachedAt
		}
	}
	delete(c.entries, oldest)
}

// parseCacheControl maps lowercased directive names to their values.
func parseCacheControl(value string) map[string]string {
	directives := make(map[string]string)
	for _, d := range strings.Split(value, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, arg, _ := strings.Cut(d, "=")
		directives[strings.ToLower(name)] = strings.Trim(arg, `"`)
	}
	return directives
}
