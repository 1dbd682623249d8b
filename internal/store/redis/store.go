package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
	"github.com/BalajiAXG/BookMark-Repo/internal/realtime"
)

// ErrNotFound is returned when a bookmark ID does not exist.
var ErrNotFound = errors.New("bookmark not found")

// Publisher emits change events after confirmed mutations.
type Publisher interface {
	Publish(ctx context.Context, userID string, ev realtime.Event) error
}

// Store is the persistent bookmark store. Each call is atomic on its
// own; there is no cross-call transaction. Every confirmed mutation
// publishes a change event on the owner's topic, best effort.
type Store struct {
	client    *redis.Client
	publisher Publisher
	logger    logger.Logger
	now       func() time.Time
}

// NewStore creates a store. publisher may be nil to disable events.
func NewStore(client *redis.Client, publisher Publisher, log logger.Logger) *Store {
	return &Store{
		client:    client,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Insert persists a new bookmark. ID and CreatedAt are assigned here,
// never by the caller; the returned record is the authoritative one.
func (s *Store) Insert(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	if b.UserID == "" {
		return domain.Bookmark{}, errors.New("bookmark has no owner")
	}

	now := s.now().UTC()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.save(ctx, b); err != nil {
		return domain.Bookmark{}, err
	}
	if err := s.client.SAdd(ctx, UserBookmarksKey(b.UserID), b.ID).Err(); err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to add bookmark to user set: %w", err)
	}

	s.publish(ctx, b.UserID, realtime.Event{Kind: realtime.EventInsert, Record: b})
	return b, nil
}

// Get retrieves one bookmark by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.Bookmark, error) {
	data, err := s.client.Get(ctx, BookmarkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return domain.Bookmark{}, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var b domain.Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return b, nil
}

// Select retrieves every bookmark owned by one user.
func (s *Store) Select(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, UserBookmarksKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark IDs: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Bookmark{}, nil
	}

	bookmarks := make([]domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		b, err := s.Get(ctx, id)
		if err != nil {
			// A dangling set member means the record is gone; anything
			// else must surface, or callers would mistake a partial
			// read for the whole collection.
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, nil
}

// Update applies a patch to an existing bookmark, scoped by owner.
// The stored record is replaced in full and the confirmed version is
// returned.
func (s *Store) Update(ctx context.Context, userID, id string, patch domain.BookmarkPatch) (domain.Bookmark, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return domain.Bookmark{}, err
	}
	if b.UserID != userID {
		return domain.Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	patch.Apply(&b)
	b.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, b); err != nil {
		return domain.Bookmark{}, err
	}

	s.publish(ctx, b.UserID, realtime.Event{Kind: realtime.EventUpdate, Record: b})
	return b, nil
}

// Delete removes a bookmark, scoped by owner. Deleting an absent ID is
// not an error.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if b.UserID != userID {
		return nil
	}

	if err := s.client.Del(ctx, BookmarkKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if err := s.client.SRem(ctx, UserBookmarksKey(userID), id).Err(); err != nil {
		return fmt.Errorf("failed to remove bookmark from user set: %w", err)
	}

	s.publish(ctx, userID, realtime.Event{Kind: realtime.EventDelete, Record: b})
	return nil
}

// Count returns how many bookmarks a user owns.
func (s *Store) Count(ctx context.Context, userID string) (int, error) {
	n, err := s.client.SCard(ctx, UserBookmarksKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return int(n), nil
}

func (s *Store) save(ctx context.Context, b domain.Bookmark) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}
	if err := s.client.Set(ctx, BookmarkKey(b.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	return nil
}

// publish emits a change event, best effort. A publish failure never
// fails the mutation: refetch-mode views recover on their next fetch.
func (s *Store) publish(ctx context.Context, userID string, ev realtime.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, userID, ev); err != nil {
		s.logger.Warn("failed to publish change event",
			logger.String("user_id", userID),
			logger.String("kind", string(ev.Kind)),
			logger.Error(err))
	}
}
