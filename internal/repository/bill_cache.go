package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// BillCache caches aggregated upcoming-bills responses. Aggregation reads
// three tables per call; the cache short-circuits repeat reads and is
// invalidated whenever a rule, suggestion, or card mutates.
type BillCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

type RedisBillCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBillCache(addr string, ttl time.Duration) *RedisBillCache {
	return &RedisBillCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// BillCacheKey builds the per-user, per-range cache key.
func BillCacheKey(userID uuid.UUID, start, end time.Time) string {
	return fmt.Sprintf("bills:%s:%s:%s", userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (c *RedisBillCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *RedisBillCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// InvalidateUser drops every cached range for the user.
func (c *RedisBillCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("bills:%s:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *RedisBillCache) Close() error {
	return c.client.Close()
}
