package cache

import (
	"container/list"
	"sync"
)

// NamespaceLRU is a namespace-based LRU cache for rendered QR outputs.
// Get promotes entries, so every operation takes the write lock.
type NamespaceLRU struct {
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	mutex    sync.Mutex
	hits     uint64
	misses   uint64
}

type entry struct {
	compositeKey string
	value        []byte
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewNamespaceLRU creates a new namespace-based LRU cache with specified capacity.
// A capacity below 1 disables caching.
func NewNamespaceLRU(capacity int) *NamespaceLRU {
	return &NamespaceLRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
	}
}

func compositeKey(namespace, key string) string {
	return namespace + ":" + key
}

// Set adds or updates a value under namespace/key. The slice is stored as is;
// callers must not mutate it afterwards.
func (c *NamespaceLRU) Set(namespace, key string, value []byte) {
	if c.capacity < 1 {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	ck := compositeKey(namespace, key)
	if element, exists := c.items[ck]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry).value = value
		return
	}

	element := c.queue.PushFront(&entry{
		compositeKey: ck,
		value:        value,
	})
	c.items[ck] = element

	for c.queue.Len() > c.capacity {
		c.evict()
	}
}

// Get retrieves a value by namespace and key and marks it recently used.
func (c *NamespaceLRU) Get(namespace, key string) ([]byte, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, exists := c.items[compositeKey(namespace, key)]
	if !exists {
		c.misses++
		return nil, false
	}

	c.hits++
	c.queue.MoveToFront(element)
	return element.Value.(*entry).value, true
}

// Invalidate removes an item from the cache by namespace and key
func (c *NamespaceLRU) Invalidate(namespace, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	ck := compositeKey(namespace, key)
	if element, exists := c.items[ck]; exists {
		c.queue.Remove(element)
		delete(c.items, ck)
	}
}

// Purge drops every entry and resets the counters.
func (c *NamespaceLRU) Purge() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]*list.Element)
	c.queue.Init()
	c.hits, c.misses = 0, 0
}

// Stats returns the current entry count and hit/miss counters.
func (c *NamespaceLRU) Stats() Stats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return Stats{
		Entries: c.queue.Len(),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// evict removes the least recently used item. Caller holds the lock.
func (c *NamespaceLRU) evict() {
	element := c.queue.Back()
	if element == nil {
		return
	}
	c.queue.Remove(element)
	delete(c.items, element.Value.(*entry).compositeKey)
}
