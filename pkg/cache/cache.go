// Package cache memoizes translation results keyed by (text, source
// language, target language). A nil result is a valid entry meaning "no
// translation needed", so repeated identical messages in the target
// language do not re-invoke detection or providers.
package cache

import (
	"sync"
	"time"
)

type key struct {
	text   string
	source string
	target string
}

type entry struct {
	result    *string
	createdAt time.Time
}

// Cache is a TTL-bounded translation memo. Eviction is amortized: a full
// expiry scan runs only when the entry count crosses the size threshold,
// instead of strict LRU bookkeeping or one timer per entry.
type Cache struct {
	mu        sync.Mutex
	entries   map[key]entry
	ttl       time.Duration
	threshold int
}

func New(ttl time.Duration, sizeThreshold int) *Cache {
	if sizeThreshold <= 0 {
		sizeThreshold = 500
	}
	return &Cache{
		entries:   make(map[key]entry),
		ttl:       ttl,
		threshold: sizeThreshold,
	}
}

// Get returns the cached result for the triple. The second return reports
// whether a live entry exists; a (nil, true) return means the cached
// outcome was "source already in target language".
func (c *Cache) Get(text, source, target string) (*string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{text, source, target}
	e, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	if time.Since(e.createdAt) >= c.ttl {
		delete(c.entries, k)
		return nil, false
	}
	return e.result, true
}

// Put stores a result for the triple. Passing nil records a deliberate
// no-translation outcome.
func (c *Cache) Put(text, source, target string, result *string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key{text, source, target}] = entry{result: result, createdAt: time.Now()}

	if len(c.entries) > c.threshold {
		c.evictExpiredLocked()
	}
}

// Sweep removes all expired entries. The engine calls this from its
// periodic maintenance tick.
func (c *Cache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpiredLocked()
}

func (c *Cache) evictExpiredLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.Sub(e.createdAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
}

// Size returns the number of entries currently held, expired or not.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
