package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis, relying on key expiry for the time-to-live
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewRedisStore creates a new Redis session store
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

// Get retrieves a session by its ID
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		s.logger.Error("failed to get session from redis", zap.Error(err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		s.logger.Error("failed to decode session", zap.Error(err))
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &sess, nil
}

// Set stores a session with the given time-to-live
func (s *RedisStore) Set(ctx context.Context, session *Session, ttl time.Duration) error {
	session.ExpiresAt = s.now().Add(ttl).UTC()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(session.ID), string(data), ttl).Err(); err != nil {
		s.logger.Error("failed to store session in redis", zap.Error(err))
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Destroy removes a session
func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		s.logger.Error("failed to delete session from redis", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
