package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"

	"github.com/neonflux-io/discord-admin-bot/internal/redis"
)

// Cache is a two-layer lookup cache: ristretto in-process, Redis as an
// optional second layer for string values. Fetches are deduplicated
// with singleflight so a burst of identical lookups hits the REST API
// once.
type Cache struct {
	l1    *ristretto.Cache
	l2    *redis.Client
	group singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

type Config struct {
	MaxCost     int64
	NumCounters int64
	DefaultTTL  time.Duration
}

func New(rdb *redis.Client, cfg Config) (*Cache, error) {
	if cfg.MaxCost == 0 {
		cfg.MaxCost = 10 << 20
	}
	if cfg.NumCounters == 0 {
		cfg.NumCounters = 100000
	}
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}

	l1, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create l1 cache: %w", err)
	}

	return &Cache{l1: l1, l2: rdb}, nil
}

// Get returns the cached value for key, falling back to fetch on a
// miss. The fetched value is stored with the given TTL.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, fetch func() (interface{}, error)) (interface{}, error) {
	if val, found := c.l1.Get(key); found {
		c.hits.Add(1)
		return val, nil
	}
	c.misses.Add(1)

	if c.l2 != nil {
		if val, err := c.l2.Get(key); err == nil && val != "" {
			c.l1.SetWithTTL(key, val, 1, ttl)
			return val, nil
		}
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		return fetch()
	})
	if err != nil {
		return nil, err
	}

	c.Set(key, val, ttl)
	return val, nil
}

// Set stores a value in L1, and in L2 when the value is a string and
// Redis is configured.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.l1.SetWithTTL(key, value, 1, ttl)
	if c.l2 != nil {
		if s, ok := value.(string); ok {
			_ = c.l2.Set(key, s, ttl)
		}
	}
}

func (c *Cache) Delete(key string) {
	c.l1.Del(key)
	if c.l2 != nil {
		_ = c.l2.Del(key)
	}
}

// Stats reports hit/miss counts for the mc diagnostics command.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Close() {
	c.l1.Close()
}
