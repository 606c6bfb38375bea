package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownAdmitsOncePerWindow(t *testing.T) {
	c := NewCooldown(50*time.Millisecond, 100)

	assert.True(t, c.Admit("user", "chan"))
	assert.False(t, c.Admit("user", "chan"))
	assert.False(t, c.Admit("user", "chan"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, c.Admit("user", "chan"), "window elapsed, must admit again")
}

func TestCooldownKeysAreIndependent(t *testing.T) {
	c := NewCooldown(time.Minute, 100)

	assert.True(t, c.Admit("alice", "general"))
	assert.True(t, c.Admit("alice", "random"))
	assert.True(t, c.Admit("bob", "general"))
	assert.False(t, c.Admit("alice", "general"))
}

func TestCooldownPurgesStaleKeys(t *testing.T) {
	c := NewCooldown(10*time.Millisecond, 5)

	for i := 0; i < 5; i++ {
		c.Admit(fmt.Sprintf("user-%d", i), "chan")
	}
	time.Sleep(30 * time.Millisecond) // beyond 2x window

	// Crossing the threshold triggers the purge pass.
	c.Admit("fresh", "chan")
	assert.Equal(t, 1, c.Tracked())
}

func TestBurstQuota(t *testing.T) {
	b := NewBurst(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, b.Admit("user", "guild", "chan", true), "admit %d", i+1)
	}
	assert.False(t, b.Admit("user", "guild", "chan", true))
	assert.False(t, b.Admit("user", "guild", "chan", true))
}

func TestBurstLazyReset(t *testing.T) {
	b := NewBurst(2, 40*time.Millisecond)

	assert.True(t, b.Admit("u", "g", "c", true))
	assert.True(t, b.Admit("u", "g", "c", true))
	assert.False(t, b.Admit("u", "g", "c", true))

	time.Sleep(50 * time.Millisecond)

	// Counter resets on next access, not via a timer.
	assert.True(t, b.Admit("u", "g", "c", true))
	assert.True(t, b.Admit("u", "g", "c", true))
	assert.False(t, b.Admit("u", "g", "c", true))
}

func TestBurstDisabledAlwaysAdmits(t *testing.T) {
	b := NewBurst(1, time.Minute)

	for i := 0; i < 10; i++ {
		assert.True(t, b.Admit("u", "g", "c", false))
	}
	// Disabled admits leave no state behind.
	assert.Equal(t, 0, b.Tracked())
}

func TestBurstSweep(t *testing.T) {
	b := NewBurst(5, 10*time.Millisecond)

	b.Admit("u1", "g", "c", true)
	b.Admit("u2", "g", "c", true)
	assert.Equal(t, 2, b.Tracked())

	time.Sleep(30 * time.Millisecond)
	b.Sweep()
	assert.Equal(t, 0, b.Tracked())
}
