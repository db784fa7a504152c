package client

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheSize bounds the number of entries a Cache keeps.
const DefaultCacheSize = 1000

// Cache is a bounded, explicitly refreshed snapshot of the journal. It never
// fetches on its own: callers Load it from the server or Replace its contents.
type Cache struct {
	mu       sync.RWMutex
	max      int
	entries  []Entry
	byDate   map[string]int
	loadedAt time.Time
}

// NewCache returns an empty cache holding at most max entries
// (DefaultCacheSize when max <= 0).
func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{max: max, byDate: map[string]int{}}
}

// Load replaces the cache contents with the server's current entry list.
func (c *Cache) Load(ctx context.Context, api *Client) error {
	entries, err := api.List(ctx)
	if err != nil {
		return err
	}
	c.Replace(entries)
	return nil
}

// Replace swaps in entries, which must be ordered newest date first. Entries
// beyond the cache bound are dropped from the oldest end.
func (c *Cache) Replace(entries []Entry) {
	if len(entries) > c.max {
		entries = entries[:c.max]
	}
	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)
	index := make(map[string]int, len(snapshot))
	for i, e := range snapshot {
		index[e.Date] = i
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries, c.byDate, c.loadedAt = snapshot, index, time.Now()
}

// Entries returns a copy of the cached entries.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByDate returns the cached entry for date.
func (c *Cache) ByDate(date string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byDate[date]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Len is the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// LoadedAt is when the cache was last replaced; zero if never.
func (c *Cache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Journal pairs a Client with a Cache that is reloaded from the server after
// every successful mutation, so the cache only ever mirrors server state.
type Journal struct {
	API   *Client
	Cache *Cache
}

// Save stores content for date and refreshes the cache.
func (j *Journal) Save(ctx context.Context, date, content string) (*Entry, bool, error) {
	e, created, err := j.API.Save(ctx, date, content)
	if err != nil {
		return nil, false, err
	}
	return e, created, j.Cache.Load(ctx, j.API)
}

// Update replaces the content of the entry with id and refreshes the cache.
func (j *Journal) Update(ctx context.Context, id, content string) (*Entry, error) {
	e, err := j.API.Update(ctx, id, content)
	if err != nil {
		return nil, err
	}
	return e, j.Cache.Load(ctx, j.API)
}

// Delete removes the entry with id and refreshes the cache.
func (j *Journal) Delete(ctx context.Context, id string) error {
	if err := j.API.Delete(ctx, id); err != nil {
		return err
	}
	return j.Cache.Load(ctx, j.API)
}
