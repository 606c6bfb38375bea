// Package ratelimit enforces the relay's two throughput policies: a
// per-(user, channel) cooldown for ordinary channel relays, and a
// per-(user, guild, channel) burst quota for reaction-triggered
// translation. Both policies are advisory: a rejected action is silently
// dropped rather than answered with an error, to avoid adding traffic.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Cooldown admits at most one action per key per window. State for keys
// untouched longer than twice the window is purged once the tracked key
// count crosses the threshold, to bound memory.
type Cooldown struct {
	mu        sync.Mutex
	window    time.Duration
	threshold int
	last      map[string]time.Time
}

func NewCooldown(window time.Duration, purgeThreshold int) *Cooldown {
	if purgeThreshold <= 0 {
		purgeThreshold = 1000
	}
	return &Cooldown{
		window:    window,
		threshold: purgeThreshold,
		last:      make(map[string]time.Time),
	}
}

// Admit reports whether an action for (userID, channelID) may proceed and,
// if so, records it.
func (c *Cooldown) Admit(userID, channelID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := cooldownKey(userID, channelID)
	now := time.Now()
	if last, ok := c.last[k]; ok && now.Sub(last) < c.window {
		return false
	}
	c.last[k] = now

	if len(c.last) > c.threshold {
		c.purgeLocked(now)
	}
	return true
}

// Sweep drops stale keys regardless of the size threshold.
func (c *Cooldown) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked(time.Now())
}

func (c *Cooldown) purgeLocked(now time.Time) {
	stale := 2 * c.window
	for k, last := range c.last {
		if now.Sub(last) > stale {
			delete(c.last, k)
		}
	}
}

// Tracked returns the number of keys currently held.
func (c *Cooldown) Tracked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}

func cooldownKey(userID, channelID string) string {
	return userID + ":" + channelID
}

type burstWindow struct {
	count   int
	resetAt time.Time
}

// Burst admits up to max actions per key per window. Reset is lazy: the
// counter rolls over on the next access after the deadline, not via a
// background timer.
type Burst struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	windows map[string]*burstWindow
}

func NewBurst(max int, window time.Duration) *Burst {
	return &Burst{
		max:     max,
		window:  window,
		windows: make(map[string]*burstWindow),
	}
}

// Admit reports whether an on-demand translation for the identity may
// proceed. When enabled is false the quota is bypassed entirely, which is
// how per-channel opt-out is expressed.
func (b *Burst) Admit(userID, guildID, channelID string, enabled bool) bool {
	if !enabled {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	k := strings.Join([]string{userID, guildID, channelID}, ":")
	now := time.Now()

	w, ok := b.windows[k]
	if !ok || now.After(w.resetAt) {
		b.windows[k] = &burstWindow{count: 1, resetAt: now.Add(b.window)}
		return true
	}

	w.count++
	return w.count <= b.max
}

// Sweep drops windows whose reset deadline passed more than a full window
// ago; they can no longer influence any admit decision.
func (b *Burst) Sweep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for k, w := range b.windows {
		if now.Sub(w.resetAt) > b.window {
			delete(b.windows, k)
		}
	}
}

// Tracked returns the number of windows currently held.
func (b *Burst) Tracked() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.windows)
}
