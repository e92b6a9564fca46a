// internal/transport/webhook/dedup.go
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupKeyPrefix = "searchbot:update:"

// Deduplicator remembers update ids so redelivered updates are dropped.
type Deduplicator interface {
	// FirstSeen records updateID and reports whether it was new.
	FirstSeen(ctx context.Context, updateID int64) (bool, error)
}

// RedisDeduplicator stores seen update ids with SETNX and a TTL.
type RedisDeduplicator struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisDeduplicator(client redis.Cmdable, ttl time.Duration) *RedisDeduplicator {
	return &RedisDeduplicator{client: client, ttl: ttl}
}

func (d *RedisDeduplicator) FirstSeen(ctx context.Context, updateID int64) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupKey(updateID), 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func dedupKey(updateID int64) string {
	return fmt.Sprintf("%s%d", dedupKeyPrefix, updateID)
}

// NoopDeduplicator treats every update as new. Used when Redis is disabled.
type NoopDeduplicator struct{}

func (NoopDeduplicator) FirstSeen(context.Context, int64) (bool, error) { return true, nil }
