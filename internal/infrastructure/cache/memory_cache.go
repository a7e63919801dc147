package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// MemoryCache is a size-bounded LRU whose entries also expire after a TTL.
type MemoryCache[T any] struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryCache[T any](maxSize int, ttl time.Duration) (*MemoryCache[T], error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &MemoryCache[T]{
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}, nil
}

func (c *MemoryCache[T]) Get(key string) (T, bool) {
	var zero T

	val, found := c.cache.Get(key)
	if !found {
		return zero, false
	}

	entry := val.(cacheEntry[T])
	if c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		return zero, false
	}
	return entry.value, true
}

// Set stores value; a non-positive ttl falls back to the cache default.
func (c *MemoryCache[T]) Set(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.cache.Add(key, cacheEntry[T]{value: value, expiresAt: c.now().Add(ttl)})
}

func (c *MemoryCache[T]) Len() int {
	return c.cache.Len()
}
