package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisClient "github.com/redis/go-redis/v9"
)

// Cache is a small JSON read-through cache over Redis with per-key TTLs.
// Callers are expected to treat every error as a miss: the store of
// record is always consulted when the cache cannot answer.
type Cache struct {
	client *redisClient.Client
	prefix string
	ctx    context.Context
}

func New(client *redisClient.Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ctx:    context.Background(),
	}
}

// Get unmarshals the cached value for key into dest. The boolean reports
// whether the key was present; a miss is not an error.
func (c *Cache) Get(key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(c.ctx, c.buildKey(key)).Result()
	if err != nil {
		if err == redisClient.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get from cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	return true, nil
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := c.client.Set(c.ctx, c.buildKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}

	return nil
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) error {
	return c.client.Del(c.ctx, c.buildKey(key)).Err()
}

// HealthCheck verifies cache connectivity.
func (c *Cache) HealthCheck() error {
	return c.client.Ping(c.ctx).Err()
}

func (c *Cache) buildKey(key string) string {
	return c.prefix + key
}
