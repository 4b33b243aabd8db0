package blobstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists blobs in Redis without expiration. Used when the
// process runs with REDIS_CONN_STRING set.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Write(ctx context.Context, key, blob string) error {
	return s.rdb.Set(ctx, key, blob, 0).Err()
}

func (s *RedisStore) Read(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
