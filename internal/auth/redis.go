package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyPrefixSession is the prefix under which the identity provider
	// writes session records.
	KeyPrefixSession = "markd:session:"
)

// SessionKey returns the redis key for a session token.
func SessionKey(token string) string {
	return KeyPrefixSession + token
}

// RedisProvider reads session records from redis. It never issues
// sessions itself.
type RedisProvider struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisProvider creates a provider on the given client.
func NewRedisProvider(client *redis.Client) *RedisProvider {
	return &RedisProvider{
		client: client,
		now:    time.Now,
	}
}

// SessionFromToken resolves a token. Unknown and expired tokens both
// yield (nil, nil).
func (p *RedisProvider) SessionFromToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	data, err := p.client.Get(ctx, SessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if s.Expired(p.now()) {
		return nil, nil
	}

	s.Token = token
	return &s, nil
}

// SignOut discards a session record. Signing out an unknown token is a
// no-op.
func (p *RedisProvider) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := p.client.Del(ctx, SessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ReapExpired deletes every expired session record. Used by the
// scheduler's janitor; the identity provider may write sessions
// without a redis TTL.
func (p *RedisProvider) ReapExpired(ctx context.Context) (int, error) {
	deleted := 0
	now := p.now()

	iter := p.client.Scan(ctx, 0, KeyPrefixSession+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := p.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		var s Session
		if err := json.Unmarshal(data, &s); err != nil {
			// Unreadable records are reaped too
			if err := p.client.Del(ctx, key).Err(); err == nil {
				deleted++
			}
			continue
		}
		if !s.Expired(now) {
			continue
		}
		if err := p.client.Del(ctx, key).Err(); err != nil {
			return deleted, fmt.Errorf("failed to delete expired session: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return deleted, nil
}
