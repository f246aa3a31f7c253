package reporting

import (
	"sync"
	"time"
)

// resultCache is a TTL-bound cache for computed query results. Keys embed
// the snapshot version, so a swap implicitly invalidates every entry
// computed against the old data; the TTL merely bounds memory for keys
// that stop being requested.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	nowFn   func() time.Time
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		nowFn:   time.Now,
	}
}

func (c *resultCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.nowFn().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *resultCache) Put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFn()
	// Drop whatever has expired while we hold the lock; the working set is
	// a handful of operations, so a full sweep is cheap.
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: now.Add(c.ttl)}
}
