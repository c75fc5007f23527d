// Package cache implements the Redis-backed statistics cache.
//
// Entries are namespaced by a generation counter: every key is written as
// "<prefix>:<generation>:<name>" and Invalidate simply increments the
// generation, so one INCR drops every cached view at once. Old generations
// expire through their TTL. Get reports the generation it read and Set writes
// under that generation, so a value loaded before an invalidation lands in a
// generation nobody reads any more.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = time.Minute

// StatsCache stores JSON-encoded statistics views in Redis.
type StatsCache struct {
	Client redis.UniversalClient
	Prefix string
	TTL    time.Duration
}

// NewStatsCache returns a cache using prefix ("stats" if empty) and ttl
// (DefaultTTL if <= 0).
func NewStatsCache(client redis.UniversalClient, prefix string, ttl time.Duration) *StatsCache {
	if prefix == "" {
		prefix = "stats"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StatsCache{Client: client, Prefix: prefix, TTL: ttl}
}

// Connect parses a redis:// URL, opens a client and pings it.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (c *StatsCache) genKey() string { return c.Prefix + ":gen" }

func (c *StatsCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.Client.Get(ctx, c.genKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *StatsCache) key(gen int64, name string) string {
	return fmt.Sprintf("%s:%d:%s", c.Prefix, gen, name)
}

// Get decodes the current generation's value for name into dst. The
// generation is returned on hits and misses alike; pass it to Set.
func (c *StatsCache) Get(ctx context.Context, name string, dst any) (int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, err
	}
	b, err := c.Client.Get(ctx, c.key(gen, name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return gen, false, fmt.Errorf("decode cached %s: %w", name, err)
	}
	return gen, true, nil
}

// Set stores v under generation gen.
func (c *StatsCache) Set(ctx context.Context, gen int64, name string, v any) error {
	k := c.key(gen, name)
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, k, b, c.TTL).Err()
}

// Invalidate starts a new generation.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.Client.Incr(ctx, c.genKey()).Err()
}
