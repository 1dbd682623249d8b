package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/BalajiAXG/BookMark-Repo/internal/auth"
	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
	"github.com/BalajiAXG/BookMark-Repo/internal/realtime"
)

func testLogger() logger.Logger {
	return logger.New("error", false)
}

// fakeRemote is an in-memory RemoteStore with injectable failures.
type fakeRemote struct {
	mu      sync.Mutex
	records map[string]domain.Bookmark
	nextID  int

	insertErr error
	updateErr error
	deleteErr error
	selectErr error

	selectCalls int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{records: make(map[string]domain.Bookmark)}
}

func (f *fakeRemote) Select(_ context.Context, userID string) ([]domain.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectCalls++
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	out := make([]domain.Bookmark, 0, len(f.records))
	for _, b := range f.records {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRemote) Insert(_ context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return domain.Bookmark{}, f.insertErr
	}
	f.nextID++
	b.ID = fmt.Sprintf("id-%d", f.nextID)
	b.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	b.UpdatedAt = b.CreatedAt
	f.records[b.ID] = b
	return b, nil
}

func (f *fakeRemote) Update(_ context.Context, userID, id string, patch domain.BookmarkPatch) (domain.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return domain.Bookmark{}, f.updateErr
	}
	b, ok := f.records[id]
	if !ok || b.UserID != userID {
		return domain.Bookmark{}, fmt.Errorf("not found: %s", id)
	}
	patch.Apply(&b)
	b.UpdatedAt = time.Now()
	f.records[id] = b
	return b, nil
}

func (f *fakeRemote) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if b, ok := f.records[id]; ok && b.UserID == userID {
		delete(f.records, id)
	}
	return nil
}

// fakeChannel hands the subscriber callback back to the test so it can
// emit events synchronously.
type fakeChannel struct {
	mu     sync.Mutex
	fn     func(realtime.Event)
	sub    *fakeSubscription
	subErr error

	// emitOnSubscribe is delivered from inside Subscribe, before it
	// returns: the hub confirms the subscription first, so an event can
	// land while the caller is still finishing its live transition.
	emitOnSubscribe []realtime.Event
}

func (c *fakeChannel) Subscribe(_ context.Context, _ string, fn func(realtime.Event)) (Subscription, error) {
	c.mu.Lock()
	if c.subErr != nil {
		c.mu.Unlock()
		return nil, c.subErr
	}
	c.fn = fn
	c.sub = &fakeSubscription{}
	sub := c.sub
	pending := c.emitOnSubscribe
	c.mu.Unlock()

	for _, ev := range pending {
		fn(ev)
	}
	return sub, nil
}

func (c *fakeChannel) Emit(ev realtime.Event) {
	c.mu.Lock()
	fn := c.fn
	c.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

type fakeSubscription struct {
	mu     sync.Mutex
	closed int
}

func (s *fakeSubscription) Close() error {
	s.mu.Lock()
	s.closed++
	s.mu.Unlock()
	return nil
}

func (s *fakeSubscription) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakeSessions resolves a fixed token set.
type fakeSessions struct {
	sessions map[string]*auth.Session
	err      error
}

func (f *fakeSessions) SessionFromToken(_ context.Context, token string) (*auth.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[token], nil
}

func (f *fakeSessions) SignOut(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}
