package loopguard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuardMarkAndSeen(t *testing.T) {
	g := New(time.Minute)

	assert.False(t, g.Seen("msg-1"))
	g.Mark("msg-1")
	assert.True(t, g.Seen("msg-1"))
	assert.False(t, g.Seen("msg-2"))
}

func TestGuardExpiry(t *testing.T) {
	g := New(30 * time.Millisecond)

	g.Mark("msg-1")
	assert.True(t, g.Seen("msg-1"))

	time.Sleep(40 * time.Millisecond)
	assert.False(t, g.Seen("msg-1"), "entry past TTL must be forgotten")

	// Forgotten means admissible again.
	g.Mark("msg-1")
	assert.True(t, g.Seen("msg-1"))
}

func TestGuardSweep(t *testing.T) {
	g := New(20 * time.Millisecond)

	g.Mark("a")
	g.Mark("b")
	time.Sleep(30 * time.Millisecond)
	g.Mark("c")

	g.Sweep()
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Seen("c"))
}

func TestGuardCompositeKeys(t *testing.T) {
	// The companion per-target-language guard composes keys as id:lang.
	g := New(time.Minute)

	g.Mark("msg-1:fr")
	assert.True(t, g.Seen("msg-1:fr"))
	assert.False(t, g.Seen("msg-1:es"))
	assert.False(t, g.Seen("msg-1"))
}
