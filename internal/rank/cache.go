package rank

import (
	"container/list"
	"sync"
)

// cacheKey identifies a ranking: the query text and the store length
// it covered. Appends change the length and miss naturally, so no
// explicit invalidation is needed.
type cacheKey struct {
	query string
	n     int
}

// cache is an LRU of published rankings. Cached items are treated as
// immutable by every consumer; get returns the stored slice directly.
type cache struct {
	mu      sync.Mutex
	maxSize int
	items   map[cacheKey]*list.Element
	lru     *list.List
}

type cacheEntry struct {
	key   cacheKey
	items []Match
}

func newCache(maxSize int) *cache {
	if maxSize <= 0 {
		maxSize = 64
	}
	return &cache{
		maxSize: maxSize,
		items:   make(map[cacheKey]*list.Element),
		lru:     list.New(),
	}
}

func (c *cache) get(query string, n int) ([]Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[cacheKey{query, n}]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*cacheEntry).items, true
}

func (c *cache) put(query string, n int, items []Match) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{query, n}
	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).items = items
		return
	}

	if c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
	c.items[key] = c.lru.PushFront(&cacheEntry{key: key, items: items})
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
