package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const recentEntriesKey = "intake:recent-entries"

// EntriesCache fronts the recent-entries read path. Misses and backend
// failures both surface as a miss; callers fall through to the store.
type EntriesCache interface {
	GetRecent(ctx context.Context) ([]map[string]any, bool)
	SetRecent(ctx context.Context, entries []map[string]any)
	Invalidate(ctx context.Context)
}

type redisEntriesCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEntriesCache returns a Redis-backed cache with the given TTL.
// A nil client yields a cache that always misses.
func NewRedisEntriesCache(client *redis.Client, ttl time.Duration) EntriesCache {
	return &redisEntriesCache{client: client, ttl: ttl}
}

func (c *redisEntriesCache) GetRecent(ctx context.Context) ([]map[string]any, bool) {
	if c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	raw, err := c.client.Get(ctx, recentEntriesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *redisEntriesCache) SetRecent(ctx context.Context, entries []map[string]any) {
	if c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, recentEntriesKey, raw, c.ttl).Err()
}

func (c *redisEntriesCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, recentEntriesKey).Err()
}
