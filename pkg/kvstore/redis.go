package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a Redis server. It is intended for
// shared environments and integration test benches where client state must be
// visible outside a single device.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store. All keys are namespaced with
// prefix to keep multiple clients from clobbering each other.
// The connection is verified with a ping before the store is returned.
func NewRedisStore(ctx context.Context, connectionURL, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("kvstore: parse redis connection string: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("kvstore: redis not ready: %w", err)
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

// Get retrieves the value stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kvstore: redis get: %w", err)
	}
	return value, nil
}

// Set stores value under key without expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kvstore: redis set: %w", err)
	}
	return nil
}

// Remove deletes the value stored under key.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("kvstore: redis del: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
