package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis. It is the recommended backend for
// server deployments, where several flowgrid instances share layout
// results.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis using a URL of the form
// redis://[user:password@]host:port/db and verifies the connection with a
// ping.
func NewRedisCache(ctx context.Context, url string) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, Retryable(err)
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value. Redis treats a zero ttl as no expiration, which
// matches the Cache contract.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a value. Deleting an absent key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }

var _ Cache = (*RedisCache)(nil)
