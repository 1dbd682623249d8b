package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/BalajiAXG/BookMark-Repo/internal/auth"
	"github.com/BalajiAXG/BookMark-Repo/internal/collection"
	"github.com/BalajiAXG/BookMark-Repo/internal/domain"
	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
	"github.com/BalajiAXG/BookMark-Repo/internal/realtime"
)

// State is the lifecycle position of one mounted view.
type State int

const (
	StateUninitialized State = iota
	StateAuthenticating
	StateUnauthenticated
	StateHydrating
	StateLive
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAuthenticating:
		return "authenticating"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateHydrating:
		return "hydrating"
	case StateLive:
		return "live"
	case StateTornDown:
		return "torn_down"
	default:
		return "unknown"
	}
}

// Mode selects how change events are reconciled.
type Mode int

const (
	// ModeIncremental folds each event into the collection.
	ModeIncremental Mode = iota
	// ModeRefetch re-fetches the whole collection on any event.
	ModeRefetch
)

// Subscription is an open change feed. Close must be idempotent.
type Subscription interface {
	Close() error
}

// Channel opens change-event subscriptions scoped to one user.
type Channel interface {
	Subscribe(ctx context.Context, userID string, fn func(realtime.Event)) (Subscription, error)
}

// Config wires a controller's collaborators.
type Config struct {
	Sessions auth.Provider
	Remote   RemoteStore
	Channel  Channel
	Policies Policies
	Mode     Mode
	Logger   logger.Logger

	// OnChange fires after hydration and after every reconciled
	// change. Optional; used by live views to push a fresh snapshot.
	OnChange func()
}

// Controller manages one view's sync lifecycle: authenticate, hydrate,
// go live on the change feed, tear down. A controller exclusively owns
// its collection and its subscription; nothing survives across mounts,
// a remount builds a new controller.
type Controller struct {
	cfg  Config
	coll *collection.Collection

	mu         sync.Mutex
	state      State
	userID     string
	store      *Store
	reconciler Reconciler
	sub        Subscription
	ctx        context.Context
}

// NewController creates a controller in the uninitialized state.
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg:   cfg,
		coll:  collection.New(),
		state: StateUninitialized,
	}
}

// Start drives the state machine to live: resolve the session, fetch
// the full collection, then open the change subscription. The fetch
// always completes (or fails) before the subscription opens.
//
// An absent session is not an error: the controller lands in
// StateUnauthenticated and Start returns nil; the caller routes to
// login. A failed fetch or subscribe returns the error and the
// controller never reaches StateLive.
//
// ctx bounds the whole session: the subscription lives until ctx is
// cancelled or Close is called.
func (c *Controller) Start(ctx context.Context, token string) error {
	c.setState(StateAuthenticating)

	sess, err := c.cfg.Sessions.SessionFromToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to resolve session: %w", err)
	}
	if sess == nil {
		c.setState(StateUnauthenticated)
		return nil
	}

	c.mu.Lock()
	if c.state == StateTornDown {
		c.mu.Unlock()
		return nil
	}
	c.userID = sess.UserID
	c.state = StateHydrating
	c.ctx = ctx
	c.store = NewStore(sess.UserID, c.coll, c.cfg.Remote, c.cfg.Policies, c.cfg.Logger)
	c.mu.Unlock()

	records, err := c.cfg.Remote.Select(ctx, sess.UserID)
	if err != nil {
		// Not live; the caller presents a retry path.
		return fmt.Errorf("failed to hydrate collection: %w", err)
	}

	// Dangling-callback guard: a teardown racing the fetch wins, the
	// stale result is dropped.
	c.mu.Lock()
	if c.state == StateTornDown {
		c.mu.Unlock()
		return nil
	}
	c.coll.Replace(records)
	c.reconciler = c.buildReconciler()
	c.mu.Unlock()

	sub, err := c.cfg.Channel.Subscribe(ctx, sess.UserID, c.dispatch)
	if err != nil {
		return fmt.Errorf("failed to open change subscription: %w", err)
	}

	c.mu.Lock()
	if c.state == StateTornDown {
		c.mu.Unlock()
		_ = sub.Close()
		return nil
	}
	c.sub = sub
	c.state = StateLive
	c.mu.Unlock()

	c.notify()
	return nil
}

// Close tears the session down: the subscription is closed
// unconditionally, even if it never fully opened. Safe to call any
// number of times; no event is delivered after the first call.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.state == StateTornDown {
		c.mu.Unlock()
		return
	}
	c.state = StateTornDown
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		if err := sub.Close(); err != nil {
			c.cfg.Logger.Warn("failed to close change subscription",
				logger.Error(err))
		}
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// UserID returns the authenticated user, empty before hydration.
func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// Store returns the session store. Nil until authentication succeeded.
func (c *Controller) Store() *Store {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store
}

// Snapshot returns the collection ordered newest first.
func (c *Controller) Snapshot() []domain.Bookmark {
	return c.coll.All()
}

func (c *Controller) buildReconciler() Reconciler {
	if c.cfg.Mode == ModeRefetch {
		return NewRefetchReconciler(func() {
			if err := c.store.Refetch(c.ctx); err != nil {
				c.cfg.Logger.Warn("refetch reconciliation failed",
					logger.Error(err))
			}
		})
	}
	return NewFoldReconciler(c.coll)
}

// dispatch is the subscription callback. The reconciler is installed
// before the subscription opens, so an event delivered in the window
// between subscribe confirmation and the live transition still folds
// into the collection. Only teardown drops events.
func (c *Controller) dispatch(ev realtime.Event) {
	c.mu.Lock()
	if c.state == StateTornDown || c.reconciler == nil {
		c.mu.Unlock()
		return
	}
	reconciler := c.reconciler
	c.mu.Unlock()

	reconciler.Apply(ev)
	c.notify()
}

func (c *Controller) notify() {
	if c.cfg.OnChange != nil {
		c.cfg.OnChange()
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	if c.state != StateTornDown {
		c.state = s
	}
	c.mu.Unlock()
}
