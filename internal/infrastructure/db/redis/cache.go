package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL strategies for cached responses.
const (
	TTLShort  = 5 * time.Minute
	TTLMedium = 30 * time.Minute
	TTLLong   = time.Hour
	TTLDay    = 24 * time.Hour
)

// ErrCacheMiss is returned by Get when no entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// ResponseCache stores rendered HTTP responses keyed by method+path.
// Key format: cache:<METHOD>:<request URI>
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache creates a ResponseCache wrapping the given Redis client.
func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// Key builds the cache key for a request.
func (c *ResponseCache) Key(method, uri string) string {
	return fmt.Sprintf("cache:%s:%s", method, uri)
}

// Get returns the cached payload for key, or ErrCacheMiss.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set stores payload under key with the given expiry.
func (c *ResponseCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// InvalidatePattern deletes every cache entry whose key contains pattern.
// Used after a mutation to drop stale list responses (e.g. pattern "recipes").
func (c *ResponseCache) InvalidatePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	match := fmt.Sprintf("cache:*%s*", pattern)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
