package domain

import "time"

// Bookmark represents a single saved link owned by one user.
//
// It is NOT tied to redis, the HTTP layer or any view. All flows
// (API mutations, realtime events, seed import) speak this structure.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Assigned by the persistent store at creation time.
	ID string `json:"id"`

	// UserID is the owning user. Every bookmark belongs to exactly one user.
	UserID string `json:"user_id"`

	// ─────────────────────────────
	// User-editable content
	// ─────────────────────────────

	// Name is the display label. Derived from the URL when the user
	// leaves it blank (quick-add flow).
	Name string `json:"name"`

	// URL is the absolute link. Always carries an explicit scheme;
	// NormalizeURL prefixes https:// before storage when missing.
	URL string `json:"url"`

	// ─────────────────────────────
	// Derived state
	// ─────────────────────────────

	// Category is a cached result of Categorize(URL). It is recomputed
	// whenever URL changes and is never edited independently.
	Category Category `json:"category"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is assigned by the persistent store. Default recency
	// ordering sorts on this field, newest first.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is updated on any mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// BookmarkPatch carries the mutable fields of an update request.
// Nil pointers mean "leave unchanged"; the confirmed record from the
// store still replaces the local one wholesale.
type BookmarkPatch struct {
	Name     *string   `json:"name,omitempty"`
	URL      *string   `json:"url,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// Apply copies the non-nil patch fields onto b.
func (p BookmarkPatch) Apply(b *Bookmark) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
}
