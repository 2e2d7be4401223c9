package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const oauthStatePrefix = "oauth:state:"

// RedisStateStore keeps OAuth handshake state nonces in Redis so they
// survive the provider redirect round-trip and expire on their own.
type RedisStateStore struct {
	client *redis.Client
}

// NewRedisStateStore wraps the shared Redis client.
func NewRedisStateStore(r *Redis) *RedisStateStore {
	return &RedisStateStore{client: r.Client}
}

// Put stores the state nonce with the given TTL.
func (s *RedisStateStore) Put(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.Set(ctx, oauthStatePrefix+state, "1", ttl).Err()
}

// Consume removes the nonce and reports whether it existed.
func (s *RedisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, oauthStatePrefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
