package rates

import (
	"sync"
	"time"

	"github.com/vietddude/walletd/internal/metrics"
)

// sweepThreshold triggers a sweep of expired entries once the cache grows
// past this many keys, keeping growth bounded for arbitrary symbol sets.
const sweepThreshold = 256

type cacheEntry struct {
	data     any
	cachedAt time.Time
}

// ttlCache is a read-mostly TTL cache. Entries are invariant for the TTL
// window and then eligible for replacement; there is no early invalidation.
type ttlCache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *ttlCache) get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Since(entry.cachedAt) >= c.ttl {
		metrics.PriceCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.PriceCacheHits.WithLabelValues("hit").Inc()
	return entry.data, true
}

func (c *ttlCache) set(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= sweepThreshold {
		for k, e := range c.entries {
			if time.Since(e.cachedAt) >= c.ttl {
				delete(c.entries, k)
			}
		}
	}
	c.entries[key] = cacheEntry{data: data, cachedAt: time.Now()}
}
