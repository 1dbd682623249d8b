package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BalajiAXG/BookMark-Repo/internal/auth"
	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/realtime"
)

func validSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*auth.Session{
		"tok": {Token: "tok", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)},
	}}
}

func newTestController(remote *fakeRemote, ch *fakeChannel, mode Mode) *Controller {
	return NewController(Config{
		Sessions: validSessions(),
		Remote:   remote,
		Channel:  ch,
		Policies: DefaultPolicies(),
		Mode:     mode,
		Logger:   testLogger(),
	})
}

func TestControllerStartHappyPath(t *testing.T) {
	remote := newFakeRemote()
	seeded, err := remote.Insert(context.Background(), domain.Bookmark{UserID: "user-1", Name: "seed", URL: "https://github.com", Category: domain.CategoryCode})
	require.NoError(t, err)

	ch := &fakeChannel{}
	c := newTestController(remote, ch, ModeIncremental)

	require.NoError(t, c.Start(context.Background(), "tok"))
	assert.Equal(t, StateLive, c.State())
	assert.Equal(t, "user-1", c.UserID())
	require.NotNil(t, c.Store())

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, seeded.ID, snap[0].ID)
}

func TestControllerUnauthenticated(t *testing.T) {
	remote := newFakeRemote()
	ch := &fakeChannel{}
	c := newTestController(remote, ch, ModeIncremental)

	require.NoError(t, c.Start(context.Background(), "bad-token"))
	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Equal(t, 0, remote.selectCalls, "no fetch happens without a session")
	assert.Nil(t, ch.sub, "no subscription opens without a session")
}

func TestControllerSessionLookupFailure(t *testing.T) {
	c := NewController(Config{
		Sessions: &fakeSessions{err: errors.New("identity provider down")},
		Remote:   newFakeRemote(),
		Channel:  &fakeChannel{},
		Policies: DefaultPolicies(),
		Logger:   testLogger(),
	})

	err := c.Start(context.Background(), "tok")
	require.Error(t, err)
	assert.NotEqual(t, StateLive, c.State())
}

func TestControllerFetchFailureNeverGoesLive(t *testing.T) {
	remote := newFakeRemote()
	remote.selectErr = errors.New("store unavailable")
	ch := &fakeChannel{}
	c := newTestController(remote, ch, ModeIncremental)

	err := c.Start(context.Background(), "tok")
	require.Error(t, err)
	assert.NotEqual(t, StateLive, c.State())
	assert.Nil(t, ch.sub, "fetch must complete before the subscription opens")
}

func TestControllerSubscribeFailure(t *testing.T) {
	remote := newFakeRemote()
	ch := &fakeChannel{subErr: errors.New("channel down")}
	c := newTestController(remote, ch, ModeIncremental)

	err := c.Start(context.Background(), "tok")
	require.Error(t, err)
	assert.NotEqual(t, StateLive, c.State())
}

func TestControllerIncrementalReconciliation(t *testing.T) {
	remote := newFakeRemote()
	ch := &fakeChannel{}

	changes := 0
	c := NewController(Config{
		Sessions: validSessions(),
		Remote:   remote,
		Channel:  ch,
		Policies: DefaultPolicies(),
		Mode:     ModeIncremental,
		Logger:   testLogger(),
		OnChange: func() { changes++ },
	})
	require.NoError(t, c.Start(context.Background(), "tok"))
	require.Equal(t, 1, changes, "hydration notifies once")

	// A change from another open session arrives on the feed.
	ch.Emit(realtime.Event{Kind: realtime.EventInsert, Record: domain.Bookmark{
		ID: "remote-1", UserID: "user-1", Name: "other tab", URL: "https://medium.com", Category: domain.CategoryBlog,
	}})

	require.Len(t, c.Snapshot(), 1)
	assert.Equal(t, "remote-1", c.Snapshot()[0].ID)
	assert.Equal(t, 2, changes)

	// Duplicate delivery is absorbed.
	ch.Emit(realtime.Event{Kind: realtime.EventInsert, Record: domain.Bookmark{
		ID: "remote-1", UserID: "user-1",
	}})
	assert.Len(t, c.Snapshot(), 1)
}

func TestControllerFoldsEventDeliveredDuringSubscribe(t *testing.T) {
	remote := newFakeRemote()
	ch := &fakeChannel{
		emitOnSubscribe: []realtime.Event{{
			Kind: realtime.EventInsert,
			Record: domain.Bookmark{
				ID: "early", UserID: "user-1", Name: "raced the live transition",
				URL: "https://github.com", Category: domain.CategoryCode,
			},
		}},
	}
	c := newTestController(remote, ch, ModeIncremental)

	// The event lands between subscribe confirmation and the live
	// transition. Nothing redelivers it, so dropping it here would
	// leave the collection inconsistent for the session's lifetime.
	require.NoError(t, c.Start(context.Background(), "tok"))
	assert.Equal(t, StateLive, c.State())

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "early", snap[0].ID)
}

func TestControllerRefetchMode(t *testing.T) {
	remote := newFakeRemote()
	ch := &fakeChannel{}
	c := newTestController(remote, ch, ModeRefetch)

	require.NoError(t, c.Start(context.Background(), "tok"))
	fetchesAfterStart := remote.selectCalls

	// Insert remotely, then let any event kind trigger reconciliation:
	// refetch mode replaces local state wholesale.
	inserted, err := remote.Insert(context.Background(), domain.Bookmark{UserID: "user-1", Name: "x", URL: "https://example.org", Category: domain.CategoryOthers})
	require.NoError(t, err)
	ch.Emit(realtime.Event{Kind: realtime.EventInsert, Record: inserted})

	assert.Equal(t, fetchesAfterStart+1, remote.selectCalls)
	require.Len(t, c.Snapshot(), 1)
	assert.Equal(t, inserted.ID, c.Snapshot()[0].ID)
}

func TestControllerCloseIsIdempotent(t *testing.T) {
	remote := newFakeRemote()
	ch := &fakeChannel{}
	c := newTestController(remote, ch, ModeIncremental)

	require.NoError(t, c.Start(context.Background(), "tok"))
	require.NotNil(t, ch.sub)

	c.Close()
	c.Close()
	c.Close()

	assert.Equal(t, StateTornDown, c.State())
	assert.Equal(t, 1, ch.sub.closeCount(), "underlying subscription closes exactly once")
}

func TestControllerCloseBeforeStart(t *testing.T) {
	c := newTestController(newFakeRemote(), &fakeChannel{}, ModeIncremental)

	// Teardown with no channel ever opened must be safe.
	c.Close()
	assert.Equal(t, StateTornDown, c.State())
}

func TestControllerNoDeliveryAfterClose(t *testing.T) {
	remote := newFakeRemote()
	ch := &fakeChannel{}
	c := newTestController(remote, ch, ModeIncremental)

	require.NoError(t, c.Start(context.Background(), "tok"))
	c.Close()

	ch.Emit(realtime.Event{Kind: realtime.EventInsert, Record: domain.Bookmark{
		ID: "late", UserID: "user-1",
	}})

	assert.Len(t, c.Snapshot(), 0, "events after teardown are dropped")
}

func TestControllerCloseDuringHydrationDropsFetch(t *testing.T) {
	remote := newFakeRemote()
	_, err := remote.Insert(context.Background(), domain.Bookmark{UserID: "user-1", Name: "seed", URL: "https://example.org"})
	require.NoError(t, err)

	ch := &fakeChannel{}
	c := newTestController(remote, ch, ModeIncremental)

	// Tear down first, then start: the completed fetch must not
	// repopulate a torn-down collection.
	c.Close()
	require.NoError(t, c.Start(context.Background(), "tok"))

	assert.Equal(t, StateTornDown, c.State())
	assert.Len(t, c.Snapshot(), 0)
	assert.Nil(t, ch.sub, "no subscription opens after teardown")
}
