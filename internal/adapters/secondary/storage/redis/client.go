package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/admin/astrografia/internal/ports/cache"
	"github.com/redis/go-redis/v9"
)

// Client кэш поверх Redis, все ключи получают общий префикс
type Client struct {
	client *redis.Client
	prefix string
}

func NewClient(client *redis.Client, prefix string) *Client {
	return &Client{
		client: client,
		prefix: prefix,
	}
}

var _ cache.Cache = (*Client)(nil)

func (c *Client) key(k string) string {
	return c.prefix + k
}

// Get возвращает cache.ErrCacheMiss, если ключа нет
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", cache.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return count > 0, nil
}

// Ping для readiness-проверки
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.client.Close()
}
