package scanner

import (
	"strings"
	"sync"
)

// defaultLineCacheCapacity bounds the number of memoized line splits.
const defaultLineCacheCapacity = 100

// lineCache memoizes content strings to their pre-split line slices so the
// schema and security passes over the same file do not re-split. Keys are the
// content strings themselves; content is immutable once scanned, so entries
// never need invalidation. Eviction is insertion-order FIFO, which is enough
// for the write-once-read-a-few-times access pattern.
//
// The cache is shared by concurrent batch workers and is mutex-guarded.
type lineCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]string
	order    []string
}

func newLineCache(capacity int) *lineCache {
	if capacity <= 0 {
		capacity = defaultLineCacheCapacity
	}
	return &lineCache{
		capacity: capacity,
		entries:  make(map[string][]string, capacity),
	}
}

// get returns the line split for content, computing and caching it on miss.
func (c *lineCache) get(content string) []string {
	c.mu.Lock()
	if lines, ok := c.entries[content]; ok {
		c.mu.Unlock()
		return lines
	}
	c.mu.Unlock()

	// Split outside the lock; concurrent misses on the same content do
	// redundant work but never block each other on the split.
	lines := strings.Split(content, "\n")

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.entries[content]; ok {
		return cached
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[content] = lines
	c.order = append(c.order, content)
	return lines
}

// len reports the number of cached entries.
func (c *lineCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
