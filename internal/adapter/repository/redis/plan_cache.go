package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// PlanCache implements usecase.PlanCache using Redis.
type PlanCache struct {
	client *redis.Client
	prefix string
}

// NewPlanCache creates a new PlanCache.
func NewPlanCache(client *redis.Client) *PlanCache {
	return &PlanCache{
		client: client,
		prefix: "debtplan:",
	}
}

// Get retrieves a cached plan by key. A missing key is a miss, not an error.
func (c *PlanCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, err
	}

	return val, nil
}

// Set stores a serialized plan with TTL.
func (c *PlanCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *PlanCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
