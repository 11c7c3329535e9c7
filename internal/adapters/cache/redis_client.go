// Package cache wraps the Redis client used for idempotency keys.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "aw:idem:"

// Client wraps redis.Client with application-specific helpers
type Client struct {
	client *redis.Client
}

// NewClient parses a redis:// URL. It does not dial; call Ping to verify the connection.
func NewClient(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DialTimeout = 5 * time.Second
	return &Client{client: redis.NewClient(opt)}, nil
}

// NewClientFrom wraps an existing client.
func NewClientFrom(c *redis.Client) *Client {
	return &Client{client: c}
}

// Ping performs a health check on the Redis connection
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Claim records key for ttl and reports whether this caller was first.
// A second claim of the same key within ttl returns false.
func (c *Client) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, idempotencyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	return ok, nil
}

// Release drops a claimed key so the request can be retried, e.g. after a failed write.
func (c *Client) Release(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
