package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sentKeyFormat keys one set of notified event ids per calendar day.
const sentKeyFormat = "notified_events_v1:%s"

// sentKeyTTL keeps yesterday's set around long enough to survive midnight
// races, then lets redis drop it.
const sentKeyTTL = 48 * time.Hour

// RedisSentStore persists the per-day sent set in redis.
type RedisSentStore struct {
	client *redis.Client
}

func NewRedisSentStore(client *redis.Client) *RedisSentStore {
	return &RedisSentStore{client: client}
}

func (s *RedisSentStore) WasSent(ctx context.Context, day, eventID string) (bool, error) {
	return s.client.SIsMember(ctx, fmt.Sprintf(sentKeyFormat, day), eventID).Result()
}

func (s *RedisSentStore) MarkSent(ctx context.Context, day, eventID string) error {
	key := fmt.Sprintf(sentKeyFormat, day)

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, key, eventID)
	pipe.Expire(ctx, key, sentKeyTTL)
	_, err := pipe.Exec(ctx)

	return err
}
