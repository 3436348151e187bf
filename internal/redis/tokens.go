package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore keeps bearer tokens in Redis with a TTL so sessions expire
// without a cleanup job.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a new TokenStore with the given session TTL.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// Issue creates a fresh token for the user and stores it with the TTL.
func (s *TokenStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.New().String()
	key := fmt.Sprintf("auth:token:%s", token)

	if err := s.client.Set(ctx, key, userID, s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Lookup resolves a token to a user ID. Returns an empty string when the
// token is unknown or expired.
func (s *TokenStore) Lookup(ctx context.Context, token string) (string, error) {
	key := fmt.Sprintf("auth:token:%s", token)

	userID, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}

	return userID, nil
}

// Revoke deletes a token so it can no longer authenticate requests.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	key := fmt.Sprintf("auth:token:%s", token)
	return s.client.Del(ctx, key).Err()
}
