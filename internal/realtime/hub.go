package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

const topicPrefix = "markd:events:"

// Topic returns the pub/sub channel name for one user's change feed.
// Events are published per-owner so a subscriber never sees another
// user's records.
func Topic(userID string) string {
	return topicPrefix + userID
}

// Hub publishes and subscribes to bookmark change events over redis
// pub/sub. One Hub is shared by the whole process; each Subscribe call
// opens an independent subscription.
type Hub struct {
	client *redis.Client
	logger logger.Logger
}

// NewHub creates a hub on the given redis client.
func NewHub(client *redis.Client, log logger.Logger) *Hub {
	return &Hub{
		client: client,
		logger: log,
	}
}

// Publish sends a change event to the owner's topic. Publishing is
// fire-and-forget: there may be zero subscribers.
func (h *Hub) Publish(ctx context.Context, userID string, ev Event) error {
	data, err := ev.Encode()
	if err != nil {
		return err
	}
	if err := h.client.Publish(ctx, Topic(userID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Subscribe opens a change-event subscription for one user and invokes
// fn for every decoded event until the subscription is closed.
// fn is called from a single goroutine, so callers need no ordering
// logic of their own.
func (h *Hub) Subscribe(ctx context.Context, userID string, fn func(Event)) (*Subscription, error) {
	pubsub := h.client.Subscribe(ctx, Topic(userID))

	// Wait for the subscription to be confirmed so no event published
	// after this call returns can be missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", Topic(userID), err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		done:   make(chan struct{}),
	}

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-sub.done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				ev, err := DecodeEvent([]byte(msg.Payload))
				if err != nil {
					h.logger.Warn("dropping undecodable realtime event",
						logger.String("topic", msg.Channel),
						logger.Error(err))
					continue
				}
				// Re-check after the potentially blocking receive: no
				// delivery may happen once Close has been requested.
				select {
				case <-sub.done:
					return
				default:
				}
				fn(ev)
			}
		}
	}()

	return sub, nil
}

// Subscription is the handle for one open change feed.
// It is exclusively owned by the session controller that opened it.
type Subscription struct {
	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
}

// Close tears the subscription down. Safe to call any number of times;
// after the first call no further events are delivered, even ones
// already in flight.
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}
