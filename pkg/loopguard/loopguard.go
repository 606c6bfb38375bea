// Package loopguard tracks message identifiers the relay has produced or
// already begun handling, so that the relay's own output is never
// re-ingested as fresh input and an edited message is not processed twice.
// Expiry is handled by periodic sweeps over the whole set rather than a
// timer per entry.
package loopguard

import (
	"sync"
	"time"
)

// Guard is a set of string keys with a fixed per-entry lifetime.
// Membership alone is the test; no payload is stored.
type Guard struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
}

func New(ttl time.Duration) *Guard {
	return &Guard{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

// Mark records the key. Re-marking refreshes its lifetime.
func (g *Guard) Mark(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[key] = time.Now()
}

// Seen reports whether the key is currently a live member. Expired entries
// read as unseen and are dropped on access.
func (g *Guard) Seen(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	at, ok := g.entries[key]
	if !ok {
		return false
	}
	if time.Since(at) >= g.ttl {
		delete(g.entries, key)
		return false
	}
	return true
}

// Sweep removes all expired entries in one pass.
func (g *Guard) Sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	for k, at := range g.entries {
		if now.Sub(at) >= g.ttl {
			delete(g.entries, k)
		}
	}
}

// Len returns the number of entries currently held, expired or not.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
