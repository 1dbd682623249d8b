package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, nil, logger.New("error", false)), mr
}

func TestInsertAssignsIdentity(t *testing.T) {
	s, _ := testStore(t)

	b, err := s.Insert(context.Background(), domain.Bookmark{
		UserID: "user-1", Name: "gh", URL: "https://github.com", Category: domain.CategoryCode,
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if b.ID == "" {
		t.Error("Insert() must assign an ID")
	}
	if b.CreatedAt.IsZero() || b.UpdatedAt.IsZero() {
		t.Error("Insert() must assign timestamps")
	}

	got, err := s.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != b.ID || got.Name != b.Name || got.URL != b.URL || got.Category != b.Category {
		t.Errorf("Get() = %+v, want %+v", got, b)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("Get() createdAt = %v, want %v", got.CreatedAt, b.CreatedAt)
	}
}

func TestInsertRequiresOwner(t *testing.T) {
	s, _ := testStore(t)

	if _, err := s.Insert(context.Background(), domain.Bookmark{Name: "orphan"}); err == nil {
		t.Fatal("Insert() without an owner must fail")
	}
}

func TestSelectSkipsDanglingSetMembers(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	kept, err := s.Insert(ctx, domain.Bookmark{UserID: "user-1", Name: "a", URL: "https://a.example"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	gone, err := s.Insert(ctx, domain.Bookmark{UserID: "user-1", Name: "b", URL: "https://b.example"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// Drop one record but leave its ID in the user set.
	if err := s.client.Del(ctx, BookmarkKey(gone.ID)).Err(); err != nil {
		t.Fatalf("Del() error = %v", err)
	}

	got, err := s.Select(ctx, "user-1")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != kept.ID {
		t.Errorf("Select() = %+v, want only %s", got, kept.ID)
	}
}

func TestSelectSurfacesUnreadableRecords(t *testing.T) {
	s, mr := testStore(t)
	ctx := context.Background()

	healthy, err := s.Insert(ctx, domain.Bookmark{UserID: "user-1", Name: "a", URL: "https://a.example"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	broken, err := s.Insert(ctx, domain.Bookmark{UserID: "user-1", Name: "b", URL: "https://b.example"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// Corrupt one record. A read failure that is not a missing record
	// must fail the whole select: a partial slice with a nil error
	// would masquerade as the complete collection.
	if err := mr.Set(BookmarkKey(broken.ID), "not json"); err != nil {
		t.Fatalf("corrupting record: %v", err)
	}

	if _, err := s.Select(ctx, "user-1"); err == nil {
		t.Fatalf("Select() must surface the unreadable record (healthy sibling %s does not excuse it)", healthy.ID)
	}
}

func TestUpdateScopedByOwner(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	b, err := s.Insert(ctx, domain.Bookmark{UserID: "user-1", Name: "mine", URL: "https://a.example"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	name := "stolen"
	if _, err := s.Update(ctx, "user-2", b.ID, domain.BookmarkPatch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() by a foreign owner: error = %v, want ErrNotFound", err)
	}

	got, err := s.Update(ctx, "user-1", b.ID, domain.BookmarkPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Name != "stolen" {
		t.Errorf("Update() name = %q, want %q", got.Name, "stolen")
	}
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	if err := s.Delete(ctx, "user-1", "never-existed"); err != nil {
		t.Fatalf("Delete() of an absent ID: error = %v", err)
	}

	b, err := s.Insert(ctx, domain.Bookmark{UserID: "user-1", Name: "a", URL: "https://a.example"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := s.Delete(ctx, "user-2", b.ID); err != nil {
		t.Fatalf("Delete() by a foreign owner: error = %v", err)
	}
	if _, err := s.Get(ctx, b.ID); err != nil {
		t.Error("a foreign delete must not remove the record")
	}
}

func TestCount(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Insert(ctx, domain.Bookmark{UserID: "user-1", Name: "x", URL: "https://a.example"}); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	n, err := s.Count(ctx, "user-1")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}

	n, err = s.Count(ctx, "user-2")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() for an empty user = %d, want 0", n)
	}
}
