package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache stores statement results of one owning namespace. Every namespace
// that references the owner shares the same instance.
type Cache interface {
	// ID is the owning namespace id
	ID() string
	// Instance identifies this cache object, two namespaces share a cache
	// exactly when their instances match.
	Instance() uuid.UUID
	Get(key string) (interface{}, bool)
	Put(key string, value interface{})
	Remove(key string) bool
	Clear()
	Len() int
}

// Factory creates the cache of an owning namespace
type Factory func(namespace string) (Cache, error)

const (
	// DefaultSize default number of entries kept by LRU caches
	DefaultSize = 1024
)

// LRUFactory returns a Factory building LRU caches with the given size and
// time to live, 0 ttl keeps entries until evicted by size.
func LRUFactory(size int, ttl time.Duration) Factory {
	return func(namespace string) (Cache, error) {
		return NewLRU(namespace, size, ttl)
	}
}

type lruCache struct {
	id       string
	instance uuid.UUID
	lru      *expirable.LRU[string, interface{}]
}

// NewLRU creates an LRU backed cache for namespace
func NewLRU(namespace string, size int, ttl time.Duration) (Cache, error) {
	if namespace == "" {
		return nil, fmt.Errorf("%w: empty namespace", ErrInvalidNamespace)
	}
	if size <= 0 {
		size = DefaultSize
	}

	return &lruCache{
		id:       namespace,
		instance: uuid.New(),
		lru:      expirable.NewLRU[string, interface{}](size, nil, ttl),
	}, nil
}

func (c *lruCache) ID() string {
	return c.id
}

func (c *lruCache) Instance() uuid.UUID {
	return c.instance
}

func (c *lruCache) Get(key string) (interface{}, bool) {
	return c.lru.Get(key)
}

func (c *lruCache) Put(key string, value interface{}) {
	c.lru.Add(key, value)
}

func (c *lruCache) Remove(key string) bool {
	return c.lru.Remove(key)
}

func (c *lruCache) Clear() {
	c.lru.Purge()
}

func (c *lruCache) Len() int {
	return c.lru.Len()
}

func (c *lruCache) String() string {
	return fmt.Sprintf("%s@%s", c.id, c.instance)
}
