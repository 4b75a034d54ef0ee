// Package cache keeps recently decoded masks so reloading a card does not
// fetch and decode its source again.
//
// Cache is a least-recently-used cache with a byte budget rather than an
// entry count: one full-screen mask can outweigh dozens of small ones.
//
//	c := cache.New[string, image.Image](64<<20, cache.ImageCost)
//	c.Set("foil.png", img)
//	img, ok := c.Get("foil.png")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

import (
	"image"
	"sync"
)

// Cache is a thread-safe LRU cache bounded by the total cost of its values.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
	cost    func(V) int64
	budget  int64
	used    int64
	tick    int64 // monotonic access counter
}

type entry[V any] struct {
	value V
	cost  int64
	atime int64
}

// New creates a cache holding at most budget cost units as measured by
// cost. A budget of 0 means unlimited. A nil cost counts every value as 1.
func New[K comparable, V any](budget int64, cost func(V) int64) *Cache[K, V] {
	if cost == nil {
		cost = func(V) int64 { return 1 }
	}
	return &Cache[K, V]{
		entries: make(map[K]*entry[V]),
		cost:    cost,
		budget:  budget,
	}
}

// ImageCost is the in-memory size of img as 32-bit pixels.
func ImageCost(img image.Image) int64 {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	return int64(b.Dx()) * int64(b.Dy()) * 4
}

// Get returns the value stored under key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value under key, evicting the least recently used entries
// while the budget is exceeded. A value costing more than the whole budget
// is not stored.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cost := c.cost(value)
	c.remove(key)
	if c.budget > 0 && cost > c.budget {
		return
	}
	c.tick++
	c.entries[key] = &entry[V]{value: value, cost: cost, atime: c.tick}
	c.used += cost
	c.evict()
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remove(key)
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.used = 0
	c.tick = 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Used returns the total cost of the stored values.
func (c *Cache[K, V]) Used() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

// Caller must hold c.mu.
func (c *Cache[K, V]) remove(key K) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.used -= e.cost
	delete(c.entries, key)
	return true
}

// evict drops least recently used entries until the budget holds.
// Caller must hold c.mu.
func (c *Cache[K, V]) evict() {
	for c.budget > 0 && c.used > c.budget {
		var (
			oldest K
			atime  int64 = -1
		)
		for k, e := range c.entries {
			if atime < 0 || e.atime < atime {
				oldest, atime = k, e.atime
			}
		}
		if atime < 0 {
			return
		}
		c.remove(oldest)
	}
}
