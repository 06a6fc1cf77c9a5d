package semrush

import (
	"sync"
	"time"
)

type cacheEntry struct {
	envelope  *ResponseEnvelope
	expiresAt time.Time
}

// Cache is a process-wide TTL cache of response envelopes keyed by the
// fully-resolved request target. Expired entries are evicted lazily on
// lookup and opportunistically pruned on writes; an expired entry is
// never returned.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry

	now func() time.Time
}

// NewCache creates a cache whose entries live for ttl. A non-positive ttl
// disables caching entirely: Set becomes a no-op and Get always misses.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached envelope for key if present and unexpired.
func (c *Cache) Get(key string) (*ResponseEnvelope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.envelope, true
}

// Set stores an envelope under key with the configured TTL.
func (c *Cache) Set(key string, envelope *ResponseEnvelope) {
	if c.ttl <= 0 || envelope == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = cacheEntry{
		envelope:  envelope,
		expiresAt: now.Add(c.ttl),
	}
	c.pruneLocked(now)
}

// Len reports the number of live entries, pruning expired ones first.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(c.now())
	return len(c.entries)
}

func (c *Cache) pruneLocked(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
