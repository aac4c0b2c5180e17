package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"monsavonvert/internal/domain"
)

// RedisStore keeps session state in Redis. Every write refreshes the TTL so an
// active session never expires mid-checkout.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, storeKey(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	if err := s.client.Set(ctx, storeKey(sessionID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.Del(ctx, storeKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func storeKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}
