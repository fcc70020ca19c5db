package memory

import (
	"sync"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driven"
)

// Ensure TableCache implements the interface.
var _ driven.TableCache = (*TableCache)(nil)

// TableCache keeps one flattened table per source path.
// An entry is served only while the caller's stamp equals the stored one,
// so a modified file is never answered from the cache.
type TableCache struct {
	mu      sync.RWMutex
	entries map[string]tableEntry
	hits    int
	misses  int
}

type tableEntry struct {
	stamp domain.SourceStamp
	rows  []domain.PlanRow
}

// NewTableCache creates an empty table cache.
func NewTableCache() *TableCache {
	return &TableCache{
		entries: make(map[string]tableEntry),
	}
}

// Get returns the cached rows when stamp matches the stored stamp.
func (c *TableCache) Get(stamp domain.SourceStamp) ([]domain.PlanRow, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[stamp.Path]
	if !ok || !entry.stamp.Equal(stamp) {
		c.misses++
		return nil, false
	}
	c.hits++
	return entry.rows, true
}

// Put replaces the cached entry for the stamp's path.
func (c *TableCache) Put(stamp domain.SourceStamp, rows []domain.PlanRow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[stamp.Path] = tableEntry{stamp: stamp, rows: rows}
}

// Invalidate drops the entry for path. An empty path drops all entries.
func (c *TableCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if path == "" {
		c.entries = make(map[string]tableEntry)
		return
	}
	delete(c.entries, path)
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the hit and miss counts since creation.
func (c *TableCache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
