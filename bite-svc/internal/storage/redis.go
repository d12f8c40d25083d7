package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionExpired = errors.New("session not found or expired")

// RedisSessionStore maps opaque session tokens to user ids.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) SessionKey(token string) string {
	return "session:" + token
}

func (s *RedisSessionStore) Store(ctx context.Context, token, userID string) (time.Time, error) {
	if err := s.Client.Set(ctx, s.SessionKey(token), userID, s.TTL).Err(); err != nil {
		return time.Time{}, err
	}
	return time.Now().Add(s.TTL), nil
}

func (s *RedisSessionStore) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := s.Client.Get(ctx, s.SessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionExpired
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, token string) error {
	return s.Client.Del(ctx, s.SessionKey(token)).Err()
}
