package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/michaeljip/rt07/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("get missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[int, string](2)
		_, ok := c.Get(1)
		assert.False(t, ok)
	})

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[int, string](2)
		c.Put(1, "one")

		v, ok := c.Get(1)
		assert.True(t, ok)
		assert.Equal(t, "one", v)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[int, string](2)
		c.Put(1, "one")
		c.Put(2, "two")

		// Touch 1 so that 2 becomes the eviction candidate.
		_, _ = c.Get(1)
		c.Put(3, "three")

		_, ok := c.Get(2)
		assert.False(t, ok)
		_, ok = c.Get(1)
		assert.True(t, ok)
		_, ok = c.Get(3)
		assert.True(t, ok)
	})

	t.Run("put replaces existing value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[int, string](2)
		c.Put(1, "one")
		c.Put(1, "uno")

		v, _ := c.Get(1)
		assert.Equal(t, "uno", v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("remove and clear", func(t *testing.T) {
		t.Parallel()

		c := cache.NewLRU[int, string](4)
		c.Put(1, "one")
		c.Put(2, "two")

		c.Remove(1)
		_, ok := c.Get(1)
		assert.False(t, ok)

		c.Clear()
		assert.Equal(t, 0, c.Len())
	})

	t.Run("panics on non-positive capacity", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { cache.NewLRU[int, string](0) })
	})
}
