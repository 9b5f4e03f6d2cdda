package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV implements KV on a Redis client.
type RedisKV struct {
	Client *redis.Client
}

// NewRedisKV connects a Redis-backed KV from a URL of the form
// redis://[user:pass@]host:port/db.
func NewRedisKV(ctx context.Context, url string) (*RedisKV, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisKV{Client: client}, nil
}

// Set stores the value under the key without expiry.
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv set key=%s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under the key.
func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get key=%s: %w", key, err)
	}
	return val, nil
}

var _ KV = (*RedisKV)(nil)
