package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestCacheHitAndMiss(t *testing.T) {
	c := New(time.Minute, 100)

	_, ok := c.Get("hello", "en", "es")
	assert.False(t, ok)

	c.Put("hello", "en", "es", strptr("hola"))
	got, ok := c.Get("hello", "en", "es")
	require.True(t, ok)
	require.NotNil(t, got)
	assert.Equal(t, "hola", *got)
}

func TestCacheNilResultIsCached(t *testing.T) {
	c := New(time.Minute, 100)

	c.Put("bonjour", "fr", "fr", nil)
	got, ok := c.Get("bonjour", "fr", "fr")
	assert.True(t, ok)
	assert.Nil(t, got)
}

func TestCacheKeyIncludesLanguagePair(t *testing.T) {
	c := New(time.Minute, 100)

	c.Put("hello", "en", "es", strptr("hola"))
	c.Put("hello", "en", "fr", strptr("bonjour"))

	es, ok := c.Get("hello", "en", "es")
	require.True(t, ok)
	assert.Equal(t, "hola", *es)

	fr, ok := c.Get("hello", "en", "fr")
	require.True(t, ok)
	assert.Equal(t, "bonjour", *fr)

	// auto-source entries are distinct from explicit-source entries
	_, ok = c.Get("hello", "auto", "es")
	assert.False(t, ok)

	assert.Equal(t, 2, c.Size())
}

func TestCacheExpiry(t *testing.T) {
	c := New(20*time.Millisecond, 100)

	c.Put("hello", "en", "es", strptr("hola"))
	_, ok := c.Get("hello", "en", "es")
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, ok = c.Get("hello", "en", "es")
	assert.False(t, ok, "entry past TTL must read as a miss")
}

func TestCacheThresholdEviction(t *testing.T) {
	c := New(20*time.Millisecond, 10)

	for i := 0; i < 10; i++ {
		c.Put(fmt.Sprintf("old-%d", i), "en", "es", strptr("x"))
	}
	time.Sleep(30 * time.Millisecond)

	// Crossing the threshold triggers the amortized expiry scan.
	c.Put("fresh", "en", "es", strptr("y"))
	assert.Equal(t, 1, c.Size())

	got, ok := c.Get("fresh", "en", "es")
	require.True(t, ok)
	assert.Equal(t, "y", *got)
}

func TestCacheSweep(t *testing.T) {
	c := New(20*time.Millisecond, 100)

	c.Put("a", "en", "es", strptr("1"))
	c.Put("b", "en", "es", strptr("2"))
	time.Sleep(30 * time.Millisecond)
	c.Put("c", "en", "es", strptr("3"))

	c.Sweep()
	assert.Equal(t, 1, c.Size())
}
