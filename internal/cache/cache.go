// Package cache keeps computed leaderboards in Redis for a short TTL so
// many polling dashboards do not rescan every user on each refresh.
//
// A nil *Cache is valid and caches nothing, which is what the server runs
// with when REDIS_URL is unset.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ecolearn:"

// LeaderboardPrefix covers every cached ranking; invalidating it drops
// them all.
const LeaderboardPrefix = "leaderboard:"

// SchoolStatsKey is the cached school ranking.
const SchoolStatsKey = LeaderboardPrefix + "schools"

// LeaderboardKey is the cached student ranking for one school, or for
// every school when schoolID is empty.
func LeaderboardKey(schoolID string) string {
	if schoolID == "" {
		return LeaderboardPrefix + "all"
	}
	return LeaderboardPrefix + "school:" + schoolID
}

// Cache is a JSON snapshot cache over a Redis client.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string, ttl time.Duration, log *slog.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse url: %w", err)
	}
	c := New(redis.NewClient(opts), ttl, log)
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return c, nil
}

// New wraps an existing client.
func New(client *redis.Client, ttl time.Duration, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

// Close releases the client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Remember returns the cached value under key, or computes, stores and
// returns it. Cache errors are logged and never fail the call.
func Remember[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return compute(ctx)
	}

	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	switch {
	case err == nil:
		var v T
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			return v, nil
		}
	case !errors.Is(err, redis.Nil):
		c.log.Warn("cache read failed", "key", key, "err", err)
	}

	v, err := compute(ctx)
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
			c.log.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return v, nil
}

// Invalidate drops every cached entry whose key starts with prefix.
func (c *Cache) Invalidate(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache invalidate failed", "prefix", prefix, "err", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "prefix", prefix, "err", err)
	}
}
