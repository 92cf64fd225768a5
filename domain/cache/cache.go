package cache

import (
	"sync"
	"time"
)

// Cache is a concurrency-safe in-memory key-value store with optional per-entry expiration.
type Cache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

type cacheItem struct {
	value      interface{}
	expiration time.Time
}

// NoExpiration is the expiration value that keeps an entry until it is deleted.
const NoExpiration time.Duration = 0

// New creates a new empty cache.
func New() *Cache {
	return &Cache{
		data: make(map[string]cacheItem),
	}
}

// Set adds an item to the cache with a specified key, value, and expiration time.
// A non-positive expiration keeps the item forever.
func (c *Cache) Set(key string, value interface{}, expiration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	item := cacheItem{
		value: value,
	}
	if expiration > 0 {
		item.expiration = time.Now().Add(expiration)
	}

	c.data[key] = item
}

// Get retrieves the value associated with a key from the cache. Returns false if the key does not exist
// or has expired. Expired entries are evicted lazily.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mutex.RLock()
	item, exists := c.data[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	if !item.expiration.IsZero() && time.Now().After(item.expiration) {
		c.Delete(key)
		return nil, false
	}

	return item.value, true
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

// Len returns the number of entries, including expired ones that were not evicted yet.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.data)
}
