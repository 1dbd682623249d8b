package collection

import (
	"sort"
	"sync"

	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
)

// DashboardLimit caps the dashboard widget to the most recent entries.
const DashboardLimit = 5

// Collection is the in-memory bookmark cache backing one live view.
// It is keyed by bookmark ID and guarded for concurrent access between
// the view's request path and the realtime event dispatcher.
//
// A Collection is exclusively owned by one sync session and rebuilt
// from scratch on every mount; nothing persists across sessions.
type Collection struct {
	mu        sync.RWMutex
	bookmarks map[string]domain.Bookmark
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{
		bookmarks: make(map[string]domain.Bookmark),
	}
}

// Replace swaps the whole collection for the given records.
// Used by the initial hydrate and by full-refetch reconciliation.
func (c *Collection) Replace(bookmarks []domain.Bookmark) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bookmarks = make(map[string]domain.Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		c.bookmarks[b.ID] = b
	}
}

// Upsert adds or fully replaces a single record. Field-level merging is
// deliberately not attempted: the last full record wins.
func (c *Collection) Upsert(b domain.Bookmark) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bookmarks[b.ID] = b
}

// Get retrieves a bookmark by ID.
func (c *Collection) Get(id string) (domain.Bookmark, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.bookmarks[id]
	return b, ok
}

// Delete removes a bookmark by ID. Removing an absent ID is a no-op.
func (c *Collection) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.bookmarks, id)
}

// Len returns the number of bookmarks held.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.bookmarks)
}

// All returns every bookmark ordered by creation time, newest first.
// Ties break on ID so the order is stable across calls.
func (c *Collection) All() []domain.Bookmark {
	c.mu.RLock()
	out := make([]domain.Bookmark, 0, len(c.bookmarks))
	for _, b := range c.bookmarks {
		out = append(out, b)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Recent returns at most n bookmarks, newest first.
// The dashboard view calls this with DashboardLimit.
func (c *Collection) Recent(n int) []domain.Bookmark {
	all := c.All()
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// ByCategory returns the bookmarks filed under one category,
// newest first.
func (c *Collection) ByCategory(cat domain.Category) []domain.Bookmark {
	all := c.All()
	out := make([]domain.Bookmark, 0, len(all))
	for _, b := range all {
		if b.Category == cat {
			out = append(out, b)
		}
	}
	return out
}

// Folder is one rendered category bucket.
type Folder struct {
	Category  domain.Category   `json:"category"`
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

// GroupByCategory buckets the collection into the fixed category set.
// Every declared category appears, in declared order, even when empty.
func (c *Collection) GroupByCategory() []Folder {
	all := c.All()

	folders := make([]Folder, 0, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		folder := Folder{Category: cat, Bookmarks: []domain.Bookmark{}}
		for _, b := range all {
			if b.Category == cat {
				folder.Bookmarks = append(folder.Bookmarks, b)
			}
		}
		folders = append(folders, folder)
	}
	return folders
}
