package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
	Network  string `json:"network" yaml:"network"` // "tcp" or "unix"
}

// Client wraps go-redis with the small command surface the bot uses:
// plain KV for the cache layer and hashes for per-guild activity
// counters. Redis is optional; callers hold a nil *Client when no
// address is configured.
type Client struct {
	client *redis.Client
}

var ctx = context.Background()

func New(cfg Config) (*Client, error) {
	network := "tcp"
	if cfg.Network != "" {
		network = cfg.Network
	}
	if len(cfg.Addr) > 0 && cfg.Addr[0] == '/' {
		network = "unix"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Network:      network,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{client: rdb}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Ping() error {
	return c.client.Ping(ctx).Err()
}

func (c *Client) Set(key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Get(key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *Client) Del(key string) error {
	return c.client.Del(ctx, key).Err()
}

// HIncrBy backs the activity counters, one hash per metric keyed by
// guild ID.
func (c *Client) HIncrBy(key, field string, incr int64) (int64, error) {
	return c.client.HIncrBy(ctx, key, field, incr).Result()
}

func (c *Client) HGet(key, field string) (string, error) {
	return c.client.HGet(ctx, key, field).Result()
}

func (c *Client) HGetAll(key string) (map[string]string, error) {
	return c.client.HGetAll(ctx, key).Result()
}
