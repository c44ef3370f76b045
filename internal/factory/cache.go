package factory

import (
	"container/list"
	"errors"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/graph"
)

// ErrCacheCorruption reports an impossible cache entry shape. Hitting it
// wipes the cache rather than serving a bad node.
var ErrCacheCorruption = errors.New("construction cache corrupted")

// DefaultCacheCapacity bounds the construction result cache.
const DefaultCacheCapacity = 256

// lruCache is a bounded most-recently-used construction cache. It is not
// safe for concurrent use; the owning factory serializes access.
type lruCache struct {
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type lruEntry struct {
	key  string
	node *graph.Node
}

func newLRUCache(capacity int) *lruCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// get returns the cached node for a key, refreshing its recency.
func (c *lruCache) get(key string) (*graph.Node, error) {
	elem, ok := c.items[key]
	if !ok {
		return nil, nil
	}
	entry, ok := elem.Value.(*lruEntry)
	if !ok {
		c.purge()
		return nil, ErrCacheCorruption
	}
	c.order.MoveToFront(elem)
	return entry.node, nil
}

// add stores a node under a key, evicting the least recently used entry when
// over capacity.
func (c *lruCache) add(key string, node *graph.Node) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*lruEntry).node = node
		return
	}
	elem := c.order.PushFront(&lruEntry{key: key, node: node})
	c.items[key] = elem
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*lruEntry).key)
	}
}

func (c *lruCache) len() int {
	return c.order.Len()
}

func (c *lruCache) purge() {
	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}
