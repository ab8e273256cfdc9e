package csrf

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "csrf:"

// RedisStore keeps CSRF tokens in Redis so validation works across service
// instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed token store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the stored token, or "" when the key is missing
func (s *RedisStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, redisKeyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

// Set stores a token with the given TTL
func (s *RedisStore) Set(ctx context.Context, userID, token string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKeyPrefix+userID, token, ttl).Err()
}

// Delete removes a stored token
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, redisKeyPrefix+userID).Err()
}
