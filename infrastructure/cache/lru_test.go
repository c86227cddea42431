package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := NewNamespaceLRU(4)

	c.Set("PRODUCT", "42", "value")

	val, found := c.Get("PRODUCT", "42")
	assert.True(t, found)
	assert.Equal(t, "value", val)

	_, found = c.Get("PRODUCT", "43")
	assert.False(t, found)
}

func TestNamespacesAreIsolated(t *testing.T) {
	c := NewNamespaceLRU(4)

	c.Set("PROV", "root", "provinces")
	c.Set("CITY", "root", "cities")

	val, found := c.Get("PROV", "root")
	assert.True(t, found)
	assert.Equal(t, "provinces", val)

	val, found = c.Get("CITY", "root")
	assert.True(t, found)
	assert.Equal(t, "cities", val)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewNamespaceLRU(2)

	c.Set("PRODUCT", "1", "a")
	c.Set("PRODUCT", "2", "b")

	// Touch 1 so 2 becomes the eviction candidate
	_, _ = c.Get("PRODUCT", "1")

	c.Set("PRODUCT", "3", "c")

	_, found := c.Get("PRODUCT", "2")
	assert.False(t, found)
	_, found = c.Get("PRODUCT", "1")
	assert.True(t, found)
	assert.Equal(t, 2, c.Size())
}

func TestInvalidateNamespace(t *testing.T) {
	c := NewNamespaceLRU(8)

	c.Set("CITY", "31", "a")
	c.Set("CITY", "32", "b")
	c.Set("PRODUCT", "42", "c")

	c.InvalidateNamespace("CITY")

	_, found := c.Get("CITY", "31")
	assert.False(t, found)
	_, found = c.Get("PRODUCT", "42")
	assert.True(t, found)
	assert.Equal(t, 1, c.Size())
}

func TestInvalidateAndClear(t *testing.T) {
	c := NewNamespaceLRU(8)

	c.Set("PRODUCT", "42", "a")
	c.Invalidate("PRODUCT", "42")

	_, found := c.Get("PRODUCT", "42")
	assert.False(t, found)

	c.Set("PRODUCT", "42", "a")
	c.Clear()
	assert.Equal(t, 0, c.Size())
}
