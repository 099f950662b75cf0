package dataset

import (
	"sync"

	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
)

// Cache holds the last-loaded table for in-process readers such as the
// summary command. It replaces the old module-level dataframe cache with
// an explicit dependency: the pipeline calls Invalidate after a successful
// run, and the next Records call reloads from disk.
type Cache struct {
	mu     sync.Mutex
	store  *Store
	loaded bool
	recs   []game.Record
}

// NewCache wraps a store with a single-load cache.
func NewCache(store *Store) *Cache {
	return &Cache{store: store}
}

// Records returns the cached table, loading it on first use.
func (c *Cache) Records() ([]game.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.recs, nil
	}
	recs, _, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	c.recs = recs
	c.loaded = true
	return c.recs, nil
}

// Invalidate discards the cached table so the next read observes the
// freshly written dataset.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.recs = nil
}
