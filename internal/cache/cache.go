// Package cache provides a thread-safe LRU cache with per-entry expiry.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string)
	Clear()
}

type Item[V any] struct {
	Key        string
	Value      V
	Expiration time.Time
}

// LRUCache evicts the least recently used entry once capacity is exceeded.
// Reads refresh recency but not expiry; Set and Touch refresh both.
type LRUCache[V any] struct {
	capacity  int
	items     map[string]*list.Element
	evictList *list.List
	mu        sync.Mutex
	ttl       time.Duration
	onEvict   func(key string, value V)
	now       func() time.Time
}

func New[V any](capacity int, ttl time.Duration) *LRUCache[V] {
	return &LRUCache[V]{
		capacity:  capacity,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		ttl:       ttl,
		now:       time.Now,
	}
}

// OnEvict registers fn to run for every entry that leaves the cache other than by Set replacing it.
// fn runs with the cache lock held and must not call back into the cache.
func (c *LRUCache[V]) OnEvict(fn func(key string, value V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

func (c *LRUCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		item := elem.Value.(*Item[V])

		if c.now().After(item.Expiration) {
			c.removeElement(elem)
			var zero V
			return zero, false
		}

		c.evictList.MoveToFront(elem)
		return item.Value, true
	}

	var zero V
	return zero, false
}

// Touch extends the expiry of key, reporting whether it was present.
func (c *LRUCache[V]) Touch(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	item := elem.Value.(*Item[V])
	if c.now().After(item.Expiration) {
		c.removeElement(elem)
		return false
	}
	item.Expiration = c.now().Add(c.ttl)
	c.evictList.MoveToFront(elem)
	return true
}

func (c *LRUCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := c.now().Add(c.ttl)

	if elem, ok := c.items[key]; ok {
		item := elem.Value.(*Item[V])
		item.Value = value
		item.Expiration = expiration
		c.evictList.MoveToFront(elem)
		return
	}

	item := &Item[V]{
		Key:        key,
		Value:      value,
		Expiration: expiration,
	}

	elem := c.evictList.PushFront(item)
	c.items[key] = elem

	if c.evictList.Len() > c.capacity {
		c.removeOldest()
	}
}

func (c *LRUCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

func (c *LRUCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.evictList.Back(); elem != nil; {
		prev := elem.Prev()
		c.removeElement(elem)
		elem = prev
	}
}

func (c *LRUCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *LRUCache[V]) removeOldest() {
	elem := c.evictList.Back()
	if elem != nil {
		c.removeElement(elem)
	}
}

func (c *LRUCache[V]) removeElement(elem *list.Element) {
	c.evictList.Remove(elem)
	item := elem.Value.(*Item[V])
	delete(c.items, item.Key)
	if c.onEvict != nil {
		c.onEvict(item.Key, item.Value)
	}
}

func (c *LRUCache[V]) CleanExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var toRemove []*list.Element

	for elem := c.evictList.Back(); elem != nil; elem = elem.Prev() {
		item := elem.Value.(*Item[V])
		if now.After(item.Expiration) {
			toRemove = append(toRemove, elem)
		}
	}

	for _, elem := range toRemove {
		c.removeElement(elem)
	}
}

func (c *LRUCache[V]) StartCleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.CleanExpired()
			case <-ctx.Done():
				return
			}
		}
	}()
}
