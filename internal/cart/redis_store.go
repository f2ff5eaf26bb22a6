package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Carts linger for a month of inactivity before redis reclaims them.
const snapshotTTL = 30 * 24 * time.Hour

// RedisStore persists cart snapshots in redis, keyed by session
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a redis-backed cart store
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

func snapshotKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, snapshotKey(sessionID)).Bytes()
	if err == redis.Nil {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(raw), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, snapshotKey(sessionID), data, snapshotTTL).Err(); err != nil {
		s.logger.Error("Failed to save cart snapshot", zap.Error(err))
		return err
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, snapshotKey(sessionID)).Err()
}
