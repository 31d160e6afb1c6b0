// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/soundoffhq/soundoff-go/internal/store"
)

// NavSnapshot is a point-in-time snapshot of everything the navigation
// renderer needs: the full menu item set, the placed content pages, and
// the id/slug pairs used to resolve page links.
type NavSnapshot struct {
	Items    []store.MenuItem
	Pages    []store.Page
	PageRefs []store.PageRef
}

// NavCache provides cached access to the navigation record set.
// The tree is always rebuilt from a full snapshot rather than patched
// incrementally, so invalidation only has to drop the snapshot.
type NavCache struct {
	queries *store.Queries
	mu      sync.RWMutex
	snap    *NavSnapshot

	hits   atomic.Int64
	misses atomic.Int64
}

// NewNavCache creates a new navigation cache.
func NewNavCache(queries *store.Queries) *NavCache {
	return &NavCache{queries: queries}
}

// Get returns the current snapshot, loading it from the store if needed.
func (c *NavCache) Get(ctx context.Context) (*NavSnapshot, error) {
	c.mu.RLock()
	if c.snap != nil {
		snap := c.snap
		c.mu.RUnlock()
		c.hits.Add(1)
		return snap, nil
	}
	c.mu.RUnlock()

	c.misses.Add(1)
	return c.load(ctx)
}

func (c *NavCache) load(ctx context.Context) (*NavSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.snap != nil {
		return c.snap, nil
	}

	items, err := c.queries.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	pages, err := c.queries.ListPlacedPages(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := c.queries.ListPageRefs(ctx)
	if err != nil {
		return nil, err
	}

	c.snap = &NavSnapshot{Items: items, Pages: pages, PageRefs: refs}
	return c.snap, nil
}

// Invalidate drops the snapshot, forcing a reload on next access.
// Called after any menu item or page placement write.
func (c *NavCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

// Stats returns cache statistics.
func (c *NavCache) Stats() Stats {
	s := Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
	c.mu.RLock()
	if c.snap != nil {
		s.Items = len(c.snap.Items) + len(c.snap.Pages)
	}
	c.mu.RUnlock()
	return s
}
