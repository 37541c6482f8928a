package authorization

import (
	"container/list"
	"fmt"
	"strings"
	"sync"
)

// DefaultCacheSize is the default capacity of a permission cache.
const DefaultCacheSize = 10000

// Cache memoizes resolved permissions per normalized path with strict
// LRU eviction. Get and Set both promote the key to most recently used,
// so every operation mutates internal order; all access is serialized
// on one mutex.
//
// The cache never recomputes anything itself. Whenever a rule file
// changes, the layer performing the write must call Invalidate with the
// affected directory prefix so stale resolutions are not served.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front is most recently used
}

type cacheEntry struct {
	key   string
	perms EffectivePermissions
}

// NewCache creates a Cache holding at most capacity entries.
func NewCache(capacity int) (*Cache, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}, nil
}

// Get returns the cached permissions for key, promoting it to most
// recently used.
func (c *Cache) Get(key string) (EffectivePermissions, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return EffectivePermissions{}, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).perms, true
}

// Set stores the permissions for key, evicting the least recently used
// entry if the cache is full.
func (c *Cache) Set(key string, perms EffectivePermissions) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).perms = perms
		c.order.MoveToFront(elem)
		return
	}

	if len(c.entries) >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, perms: perms})
}

// Invalidate removes every entry whose key starts with prefix.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, elem := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.order.Remove(elem)
			delete(c.entries, key)
		}
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats describes the cache contents for diagnostics.
type Stats struct {
	Size     int
	Capacity int
	Keys     []string // most recently used first
}

// Stats returns a snapshot of the cache state.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*cacheEntry).key)
	}
	return Stats{Size: len(c.entries), Capacity: c.capacity, Keys: keys}
}
