package cache

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore stores entries in Redis with a per-key expiry.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Ping checks that the server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return crerr.Wrap(err, "ping redis")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if crerr.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, crerr.Wrapf(err, "redis get %q", key)
	}
	return raw, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return nil
	}
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return crerr.Wrapf(err, "redis set %q", key)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
