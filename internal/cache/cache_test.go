// internal/cache/cache_test.go
package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	Initialize()
	defer Flush()

	Set("key", "value", time.Minute)
	got, found := Get("key")
	require.True(t, found)
	assert.Equal(t, "value", got)

	Delete("key")
	_, found = Get("key")
	assert.False(t, found)
}

func TestStoreNilSafe(t *testing.T) {
	store = nil

	_, found := Get("anything")
	assert.False(t, found)
	// Writes against an uninitialized store are dropped, not panics.
	Set("anything", 1, time.Minute)
	Delete("anything")
	Flush()
}

func TestResultCacheRoundTrip(t *testing.T) {
	c := NewResultCache[string](4, time.Minute)

	c.Set("a", "alpha")
	got, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, "alpha", got)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestResultCacheExpiry(t *testing.T) {
	c := NewResultCache[int](4, 10*time.Millisecond)

	c.Set("n", 7)
	time.Sleep(25 * time.Millisecond)

	_, found := c.Get("n")
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}

func TestResultCacheEviction(t *testing.T) {
	c := NewResultCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	assert.Equal(t, 2, c.Len())
	_, found := c.Get("a")
	assert.False(t, found)
}
