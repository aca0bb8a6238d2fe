package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	catalogEntity "meezy.GO/model/entity/catalog"
)

// SnapshotCache is the shared (cross-register) snapshot tier.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]catalogEntity.Item, bool)
	Set(ctx context.Context, key string, items []catalogEntity.Item, ttl time.Duration)
}

// RedisSnapshotCache stores the serialized snapshot in redis. All failures
// are treated as cache misses; the resolver falls back to a fresh fetch.
type RedisSnapshotCache struct {
	client *redis.Client
}

// NewRedisSnapshotCache returns nil for a nil client so callers can pass
// config.RedisClient straight through.
func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	if client == nil {
		return nil
	}
	return &RedisSnapshotCache{client: client}
}

func (c *RedisSnapshotCache) Get(ctx context.Context, key string) ([]catalogEntity.Item, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var items []catalogEntity.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *RedisSnapshotCache) Set(ctx context.Context, key string, items []catalogEntity.Item, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, ttl)
}
