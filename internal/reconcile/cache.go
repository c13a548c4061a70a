package reconcile

import (
	"sync"

	"github.com/fitweb/fitweb/internal/model"
)

// EntryCache keeps the last-fetched log history per session so a confirmed
// edit or delete patches the displayed rows in place instead of refetching.
// The patch is applied only after the tracker API accepts the change; a
// failed save leaves the cache untouched.
type EntryCache struct {
	mu      sync.RWMutex
	entries map[string][]model.LogEntry // session id -> last fetched slice
}

func NewEntryCache() *EntryCache {
	return &EntryCache{entries: make(map[string][]model.LogEntry)}
}

// Prime replaces the session's cached history with a fresh fetch.
func (c *EntryCache) Prime(sessionID string, entries []model.LogEntry) {
	copied := make([]model.LogEntry, len(entries))
	copy(copied, entries)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sessionID] = copied
}

// Get returns the cached history, or nil when nothing is primed.
func (c *EntryCache) Get(sessionID string) []model.LogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.entries[sessionID]
	if !ok {
		return nil
	}
	out := make([]model.LogEntry, len(cached))
	copy(out, cached)
	return out
}

// Entry looks up a cached row by id.
func (c *EntryCache) Entry(sessionID, entryID string) (model.LogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries[sessionID] {
		if e.ID == entryID {
			return e, true
		}
	}
	return model.LogEntry{}, false
}

// Patch replaces the cached row with the same id. Returns false when the
// row is not cached (the caller then has nothing to update locally).
func (c *EntryCache) Patch(sessionID string, patched model.LogEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached := c.entries[sessionID]
	for i := range cached {
		if cached[i].ID == patched.ID {
			cached[i] = patched
			return true
		}
	}
	return false
}

// Remove drops a deleted row from the cache.
func (c *EntryCache) Remove(sessionID, entryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached := c.entries[sessionID]
	for i := range cached {
		if cached[i].ID == entryID {
			c.entries[sessionID] = append(cached[:i], cached[i+1:]...)
			return
		}
	}
}

// Drop forgets the session entirely (logout, session invalidation).
func (c *EntryCache) Drop(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
}
