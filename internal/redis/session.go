package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore is the durable key/value store behind the wizard's
// persistence adapter. Snapshots carry a TTL so abandoned sessions age out
// instead of accumulating.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultSessionTTL keeps a draft wizard recoverable for a week.
const DefaultSessionTTL = 7 * 24 * time.Hour

// NewSessionStore creates a SessionStore. A non-positive ttl falls back to
// DefaultSessionTTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Write stores value under key, refreshing the session TTL.
func (s *SessionStore) Write(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

// Read returns the value for key; ok is false on a missing key.
func (s *SessionStore) Read(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Remove deletes key. Deleting an absent key is not an error.
func (s *SessionStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
