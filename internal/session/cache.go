// Package session holds the browsing-session state: the per-market show
// cache and the human-readable status log.
package session

import (
	"sync"

	"pancake-service/internal/domain/shows"
)

// Status strings surfaced to the progress display. Only the trailing
// " done." suffix is ever appended to an already-emitted entry.
const (
	StatusCacheHit = "Data fetched from session storage."
	StatusFetching = "Fetching Market Data..."
	StatusParsing  = "Parsing Market Data..."
	StatusDone     = " done."
)

// Cache stores the last normalized show list for the selected market. One
// live entry per session; a market change replaces it wholesale.
type Cache interface {
	// Get returns the cached shows when the entry belongs to marketID.
	Get(marketID string) ([]shows.Show, bool)
	// Put replaces any prior entry. Never merges.
	Put(marketID string, list []shows.Show)
	// ShouldRefetch reports whether a feed fetch is needed: true iff no
	// entry exists yet or the cached market differs from marketID.
	ShouldRefetch(marketID string) bool
	// Clear drops the entry so the next lookup refetches. Used after a
	// transport failure, when no list (not even an empty one) is known.
	Clear()
}

// MemoryCache is the in-process Cache implementation.
type MemoryCache struct {
	mu       sync.RWMutex
	set      bool
	marketID string
	list     []shows.Show
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(marketID string) ([]shows.Show, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.set || c.marketID != marketID {
		return nil, false
	}
	out := make([]shows.Show, len(c.list))
	copy(out, c.list)
	return out, true
}

func (c *MemoryCache) Put(marketID string, list []shows.Show) {
	entry := make([]shows.Show, len(list))
	copy(entry, list)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = true
	c.marketID = marketID
	c.list = entry
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = false
	c.marketID = ""
	c.list = nil
}

func (c *MemoryCache) ShouldRefetch(marketID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.set || c.marketID != marketID
}
