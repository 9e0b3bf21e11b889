package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const lastLocationUpdateKey = "last_location_update_v1"

// SessionStore persists the small cross-restart session facts in redis.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// MarkLocationUpdate records when an update cycle was last accepted.
func (s *SessionStore) MarkLocationUpdate(ctx context.Context, at time.Time) error {
	return s.client.Set(ctx, lastLocationUpdateKey, at.UTC().Format(time.RFC3339), 0).Err()
}

// LastLocationUpdate returns the recorded timestamp, with ok false when no
// update was ever accepted.
func (s *SessionStore) LastLocationUpdate(ctx context.Context) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, lastLocationUpdateKey).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	at, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, false, err
	}

	return at, true, nil
}
