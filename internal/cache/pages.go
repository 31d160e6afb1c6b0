package cache

import (
	"context"
	"time"
)

// PageCache caches rendered page payloads by slug on top of a Cacher
// backend, so deployments with Redis share the cache across instances.
type PageCache struct {
	backend Cacher
	ttl     time.Duration
}

// NewPageCache creates a page cache over the given backend.
func NewPageCache(backend Cacher, ttl time.Duration) *PageCache {
	return &PageCache{backend: backend, ttl: ttl}
}

func pageKey(slug string) string {
	return "page:" + slug
}

// Get returns the cached payload for a slug, or ErrCacheMiss.
func (c *PageCache) Get(ctx context.Context, slug string) ([]byte, error) {
	return c.backend.Get(ctx, pageKey(slug))
}

// Set stores the rendered payload for a slug.
func (c *PageCache) Set(ctx context.Context, slug string, payload []byte) error {
	return c.backend.Set(ctx, pageKey(slug), payload, c.ttl)
}

// Invalidate drops the cached payload for a slug.
func (c *PageCache) Invalidate(ctx context.Context, slug string) {
	_ = c.backend.Delete(ctx, pageKey(slug))
}
