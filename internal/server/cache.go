package server

import (
	"sync"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
)

// cacheKey identifies a unique tree read scope.
type cacheKey struct {
	Session int
	Root    model.NodeID
}

// cacheEntry holds a flattened tree with its timestamp.
type cacheEntry struct {
	nodes     []model.FlatNode
	timestamp time.Time
}

// TreeCache provides a TTL-based cache of flattened object trees.
type TreeCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewTreeCache creates a new cache. A ttl of 0 disables caching.
func NewTreeCache(ttl time.Duration) *TreeCache {
	return &TreeCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// ReadNodes returns cached nodes for (session, root) if within TTL,
// otherwise calls read and caches its result. Failed reads are not cached.
// The caller must hold the session mutex.
func (c *TreeCache) ReadNodes(session int, root model.NodeID, read func() ([]model.FlatNode, error)) ([]model.FlatNode, error) {
	if c.ttl == 0 {
		return read()
	}

	key := cacheKey{Session: session, Root: root}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		nodes := entry.nodes
		c.mu.Unlock()
		return nodes, nil
	}
	c.mu.Unlock()

	nodes, err := read()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{nodes: nodes, timestamp: c.now()}
	c.mu.Unlock()

	return nodes, nil
}

// InvalidateSession removes all cache entries for one parallel session.
func (c *TreeCache) InvalidateSession(session int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Session == session {
			delete(c.entries, k)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *TreeCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
