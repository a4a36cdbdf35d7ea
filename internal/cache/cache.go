// Package cache provides in-memory memoization keyed by directory path.
//
// Entries are unbounded and live for the lifetime of the owning scanner; the
// installed-package layout is assumed immutable while the process runs, so no
// TTL or eviction is needed. Clear exists for test isolation. Keys are raw
// path strings: no symlink resolution, trailing-slash stripping, or case
// folding is applied, so two spellings of the same directory cache
// independently.
package cache

import "sync"

// PathCache is a thread-safe map from a directory path to a value.
type PathCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

// NewPathCache returns an empty cache.
func NewPathCache[V any]() *PathCache[V] {
	return &PathCache[V]{entries: make(map[string]V)}
}

// Get returns the cached value for dir, if present.
func (c *PathCache[V]) Get(dir string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[dir]
	return v, ok
}

// Set stores the value for dir, overwriting any previous entry.
func (c *PathCache[V]) Set(dir string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[dir] = v
}

// Clear removes every entry.
func (c *PathCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]V)
}

// Len returns the number of cached entries.
func (c *PathCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
