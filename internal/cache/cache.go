// internal/cache/cache.go
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	gocache "github.com/patrickmn/go-cache"
)

// store backs the small, unbounded caches (suggestions, trending queries).
var store *gocache.Cache

func Initialize() {
	store = gocache.New(5*time.Minute, 10*time.Minute)
}

func Get(key string) (interface{}, bool) {
	if store == nil {
		return nil, false
	}
	return store.Get(key)
}

func Set(key string, value interface{}, duration time.Duration) {
	if store == nil {
		return
	}
	store.Set(key, value, duration)
}

func Delete(key string) {
	if store != nil {
		store.Delete(key)
	}
}

func Flush() {
	if store != nil {
		store.Flush()
	}
}

type item[T any] struct {
	value     T
	expiredAt time.Time
}

// ResultCache is a bounded LRU with a per-entry TTL, used for search-result
// pages where an unbounded cache would grow with query cardinality.
type ResultCache[T any] struct {
	storage *lru.Cache[string, item[T]]
	ttl     time.Duration
}

func NewResultCache[T any](size int, ttl time.Duration) *ResultCache[T] {
	c, _ := lru.New[string, item[T]](size)
	return &ResultCache[T]{
		storage: c,
		ttl:     ttl,
	}
}

func (c *ResultCache[T]) Set(key string, value T) {
	c.storage.Add(key, item[T]{
		value:     value,
		expiredAt: time.Now().Add(c.ttl),
	})
}

func (c *ResultCache[T]) Get(key string) (T, bool) {
	var zero T
	it, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}

	if time.Now().After(it.expiredAt) {
		c.storage.Remove(key)
		return zero, false
	}

	return it.value, true
}

func (c *ResultCache[T]) Delete(key string) {
	c.storage.Remove(key)
}

func (c *ResultCache[T]) Purge() {
	c.storage.Purge()
}

func (c *ResultCache[T]) Len() int {
	return c.storage.Len()
}
