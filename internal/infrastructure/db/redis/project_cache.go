package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/craftdesk/client-portal/internal/core/ports"
)

const cacheTTL = 30 * time.Second

// ProjectCache stores composed project views as JSON under short TTLs.
// Key format: projects:<scope> where scope is "all" or "user:<id>".
type ProjectCache struct {
	client *redis.Client
}

// NewProjectCache wraps the given Redis client.
func NewProjectCache(client *redis.Client) *ProjectCache {
	return &ProjectCache{client: client}
}

// GetViews returns the cached views for key, or (nil, nil) on a miss.
func (c *ProjectCache) GetViews(ctx context.Context, key string) ([]*ports.ProjectView, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	views := []*ports.ProjectView{}
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return views, nil
}

// SetViews caches the views for key with the standard TTL.
func (c *ProjectCache) SetViews(ctx context.Context, key string, views []*ports.ProjectView) error {
	raw, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(key), raw, cacheTTL).Err()
}

// Invalidate removes the given cache entries.
func (c *ProjectCache) Invalidate(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Del(ctx, full...).Err()
}

func (c *ProjectCache) key(k string) string {
	return "projects:" + k
}
