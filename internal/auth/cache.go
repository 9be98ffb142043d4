package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickdesk/quickdesk/internal/domain"
)

const sessionKeyPrefix = "session:user:"

// SessionCache keeps recently resolved users in Redis so every request does
// not hit the user gateway. Entries are short-lived; the engine itself always
// reads through the gateway.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache builds a cache. A nil client disables caching.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

// Get returns the cached user for an email, if present.
func (c *SessionCache) Get(ctx context.Context, email string) (*domain.User, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, sessionKeyPrefix+email).Bytes()
	if err != nil {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Set stores a resolved user.
func (c *SessionCache) Set(ctx context.Context, user *domain.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, sessionKeyPrefix+user.Email, raw, c.ttl).Err()
}

// Invalidate drops a cached user, used after role changes.
func (c *SessionCache) Invalidate(ctx context.Context, email string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, sessionKeyPrefix+email).Err()
}
