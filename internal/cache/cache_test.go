package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathCache(t *testing.T) {
	c := NewPathCache[[]string]()

	_, ok := c.Get("/a")
	assert.False(t, ok)

	c.Set("/a", []string{"x", "y"})
	got, ok := c.Get("/a")
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, got)
	assert.Equal(t, 1, c.Len())

	t.Run("overwrite", func(t *testing.T) {
		c.Set("/a", []string{"z"})
		got, ok := c.Get("/a")
		assert.True(t, ok)
		assert.Equal(t, []string{"z"}, got)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("keys are raw strings", func(t *testing.T) {
		// No normalization: a trailing slash is a distinct key.
		c.Set("/a/", []string{"slash"})
		assert.Equal(t, 2, c.Len())
	})

	t.Run("clear", func(t *testing.T) {
		c.Clear()
		assert.Equal(t, 0, c.Len())
		_, ok := c.Get("/a")
		assert.False(t, ok)
	})
}

func TestPathCache_Concurrent(t *testing.T) {
	c := NewPathCache[string]()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Set("/shared", "value")
				v, ok := c.Get("/shared")
				if ok {
					assert.Equal(t, "value", v)
				}
			}
		}()
	}
	wg.Wait()
}
