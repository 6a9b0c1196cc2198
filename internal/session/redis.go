package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"betternotes/internal/domain"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps a redis client as a session Store. Every write refreshes the
// session TTL so an active browser keeps its cart alive.
func NewRedis(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func sessionKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}

func (s *redisStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	return s.client.Set(ctx, sessionKey(sessionID, key), value, s.ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, sessionID, key string) error {
	return s.client.Del(ctx, sessionKey(sessionID, key)).Err()
}
