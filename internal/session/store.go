package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/BalajiAXG/BookMark-Repo/internal/collection"
	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

// RemoteStore is the persistent store as the sync layer sees it.
// Each call is atomic on its own and implicitly scoped by owner.
type RemoteStore interface {
	Select(ctx context.Context, userID string) ([]domain.Bookmark, error)
	Insert(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error)
	Update(ctx context.Context, userID, id string, patch domain.BookmarkPatch) (domain.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
}

// Store binds one session's local collection to the remote store and
// applies the view's mutation disciplines. It is owned by exactly one
// session controller; two sessions never share a Store.
type Store struct {
	userID   string
	coll     *collection.Collection
	remote   RemoteStore
	policies Policies
	logger   logger.Logger

	mu        sync.Mutex
	editingID string
}

// NewStore creates a session store for one user.
func NewStore(userID string, coll *collection.Collection, remote RemoteStore, policies Policies, log logger.Logger) *Store {
	return &Store{
		userID:   userID,
		coll:     coll,
		remote:   remote,
		policies: policies,
		logger:   log,
	}
}

// UserID returns the owning user.
func (s *Store) UserID() string { return s.userID }

// Collection exposes the local cache for rendering.
func (s *Store) Collection() *collection.Collection { return s.coll }

// Add creates a bookmark from a raw URL. The URL is scheme-normalized,
// the category computed, and the name derived when the caller passed
// none. The record returned carries the store-assigned ID and creation
// time.
func (s *Store) Add(ctx context.Context, rawURL, name string) (domain.Bookmark, error) {
	url := domain.NormalizeURL(rawURL)
	category := domain.Categorize(url)

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DeriveName(url)
	}

	b := domain.Bookmark{
		UserID:   s.userID,
		Name:     name,
		URL:      url,
		Category: category,
	}

	confirmed, err := s.remote.Insert(ctx, b)
	if err != nil {
		// Reported, not retried; local state untouched under
		// ConfirmThenApply.
		return domain.Bookmark{}, fmt.Errorf("failed to add bookmark: %w", err)
	}

	s.coll.Upsert(confirmed)
	return confirmed, nil
}

// Update edits a bookmark's name and/or URL. A changed URL is
// re-normalized and its category recomputed; the category is never
// settable on its own. Nil arguments leave the field unchanged.
func (s *Store) Update(ctx context.Context, id string, name, rawURL *string) (domain.Bookmark, error) {
	var patch domain.BookmarkPatch

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		patch.Name = &trimmed
	}
	if rawURL != nil {
		url := domain.NormalizeURL(*rawURL)
		category := domain.Categorize(url)
		patch.URL = &url
		patch.Category = &category
	}

	confirmed, err := s.remote.Update(ctx, s.userID, id, patch)
	if err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to update bookmark: %w", err)
	}

	s.coll.Upsert(confirmed)
	s.finishEdit(id)
	return confirmed, nil
}

// Remove deletes a bookmark. Under the default Optimistic policy the
// local record disappears immediately; if the remote delete then
// fails, consistency is restored by a full refetch rather than
// re-inserting piecemeal.
func (s *Store) Remove(ctx context.Context, id string) error {
	if s.policies.Remove == Optimistic {
		s.coll.Delete(id)
		if err := s.remote.Delete(ctx, s.userID, id); err != nil {
			s.logger.Warn("remote delete failed, refetching collection",
				logger.String("bookmark_id", id),
				logger.Error(err))
			if rerr := s.Refetch(ctx); rerr != nil {
				s.logger.Error("refetch after failed delete also failed",
					logger.Error(rerr))
			}
			return fmt.Errorf("failed to delete bookmark: %w", err)
		}
		return nil
	}

	if err := s.remote.Delete(ctx, s.userID, id); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	s.coll.Delete(id)
	return nil
}

// Refetch replaces the local collection with the remote state
// wholesale.
func (s *Store) Refetch(ctx context.Context) error {
	records, err := s.remote.Select(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("failed to refetch bookmarks: %w", err)
	}
	s.coll.Replace(records)
	return nil
}

// StartEdit claims the view's single edit slot for a bookmark and
// returns its current state as the draft baseline. Claiming while
// another edit is in progress silently discards that draft; there is
// no autosave. Returns false when the ID is not in the collection.
func (s *Store) StartEdit(id string) (domain.Bookmark, bool) {
	b, ok := s.coll.Get(id)
	if !ok {
		return domain.Bookmark{}, false
	}

	s.mu.Lock()
	s.editingID = id
	s.mu.Unlock()
	return b, true
}

// Editing returns the ID currently holding the edit slot, if any.
func (s *Store) Editing() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.editingID != ""
}

// CancelEdit releases the edit slot without saving.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	s.editingID = ""
	s.mu.Unlock()
}

func (s *Store) finishEdit(id string) {
	s.mu.Lock()
	if s.editingID == id {
		s.editingID = ""
	}
	s.mu.Unlock()
}
