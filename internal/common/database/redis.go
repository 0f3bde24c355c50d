// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"business-dashboard/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client
type RedisClient struct {
	Client *redis.Client

	embedded *miniredis.Miniredis
}

// NewRedis creates a new Redis client. An empty address starts an in-process
// redis so the dev server runs without external services.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	if cfg.Address == "" {
		return NewEmbeddedRedis()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	return &RedisClient{Client: rdb}, nil
}

// NewEmbeddedRedis starts a miniredis instance and connects to it.
func NewEmbeddedRedis() (*RedisClient, error) {
	mr, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("start embedded redis: %w", err)
	}
	return &RedisClient{
		Client:   redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		embedded: mr,
	}, nil
}

// NewRedisFromClient wraps an existing client, e.g. one from redismock.
func NewRedisFromClient(c *redis.Client) *RedisClient {
	return &RedisClient{Client: c}
}

// Embedded reports whether the client talks to an in-process redis.
func (c *RedisClient) Embedded() bool {
	return c.embedded != nil
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection and stops an embedded server.
func (c *RedisClient) Close() error {
	var err error
	if c.Client != nil {
		err = c.Client.Close()
	}
	if c.embedded != nil {
		c.embedded.Close()
	}
	return err
}

// Get retrieves a value by key
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Set sets a value with optional expiration
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Client.Set(ctx, key, value, expiration).Err()
}

// Del deletes one or more keys and returns how many existed
func (c *RedisClient) Del(ctx context.Context, keys ...string) (int64, error) {
	return c.Client.Del(ctx, keys...).Result()
}
