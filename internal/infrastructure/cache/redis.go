// Package cache provides the Redis read-through cache for published
// landing pages. The public invitation page is by far the hottest read
// path, so cache failures are soft: callers fall back to Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes and returns a Redis client.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

type LandingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLandingCache(client *redis.Client, ttl time.Duration) *LandingCache {
	return &LandingCache{client: client, ttl: ttl}
}

func cacheKey(slug string) string {
	return "landing:" + slug
}

// Get returns the cached page for a slug, or (nil, nil) on a miss.
func (c *LandingCache) Get(ctx context.Context, slug string) (*domain.LandingPage, error) {
	data, err := c.client.Get(ctx, cacheKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var page domain.LandingPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode cached page: %w", err)
	}
	return &page, nil
}

func (c *LandingCache) Set(ctx context.Context, page *domain.LandingPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(page.Slug), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *LandingCache) Delete(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, cacheKey(slug)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
