// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic over the store layer:
// navigation tree building and reordering, content placement, and
// page content rendering.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/soundoffhq/soundoff-go/internal/cache"
	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/util"
)

// Validation errors for menu item writes.
var (
	ErrTitleRequired  = errors.New("title is required")
	ErrInvalidIcon    = errors.New("unknown icon name")
	ErrSelfParent     = errors.New("menu item cannot be its own parent")
	ErrParentNotFound = errors.New("parent menu item does not exist")
	ErrItemNotFound   = errors.New("menu item not found")
)

// NavNode is a menu item with its resolved children, sorted for display.
type NavNode struct {
	Item     store.MenuItem
	Children []NavNode
}

// NavService manages the navigation menu hierarchy.
type NavService struct {
	db       *sql.DB
	queries  *store.Queries
	navCache *cache.NavCache
}

// NewNavService creates a new NavService. If navCache is nil the
// service reads directly from the store on every call.
func NewNavService(db *sql.DB, navCache *cache.NavCache) *NavService {
	return &NavService{
		db:       db,
		queries:  store.New(db),
		navCache: navCache,
	}
}

// BuildTree converts a flat menu item list into a forest. Children are
// sorted by nav_order ascending with input order breaking ties, so two
// runs over the same snapshot always produce the same tree. Rows whose
// parent_id does not resolve to a row in the input (or points at the
// row itself) become roots; a dangling parent reference is not an
// error. Every input row appears in the output exactly once.
func BuildTree(items []store.MenuItem) []NavNode {
	index := make(map[int64]int, len(items))
	for i, it := range items {
		index[it.ID] = i
	}

	children := make([][]int, len(items))
	var roots []int
	for i, it := range items {
		if it.ParentID.Valid && it.ParentID.Int64 != it.ID {
			if p, ok := index[it.ParentID.Int64]; ok {
				children[p] = append(children[p], i)
				continue
			}
		}
		roots = append(roots, i)
	}

	// The store returns rows pre-sorted by nav_order, but ad-hoc
	// callers may not; the stable sort keeps both reproducible.
	byOrder := func(ix []int) {
		sort.SliceStable(ix, func(a, b int) bool {
			return items[ix[a]].NavOrder < items[ix[b]].NavOrder
		})
	}
	byOrder(roots)
	for i := range children {
		byOrder(children[i])
	}

	var build func(i int) NavNode
	build = func(i int) NavNode {
		node := NavNode{Item: items[i], Children: []NavNode{}}
		for _, c := range children[i] {
			node.Children = append(node.Children, build(c))
		}
		return node
	}

	forest := make([]NavNode, 0, len(roots))
	for _, r := range roots {
		forest = append(forest, build(r))
	}
	return forest
}

// VisibleTree prunes inactive entries and entries hidden from the
// viewer. Children of a pruned entry are pruned with it.
func VisibleTree(nodes []NavNode, viewer model.Viewer) []NavNode {
	visible := make([]NavNode, 0, len(nodes))
	for _, n := range nodes {
		if !n.Item.IsActive {
			continue
		}
		if !model.ParseVisibility(n.Item.Visibility).Allows(viewer) {
			continue
		}
		n.Children = VisibleTree(n.Children, viewer)
		visible = append(visible, n)
	}
	return visible
}

// snapshot returns the current navigation record set, via the cache
// when one is configured.
func (s *NavService) snapshot(ctx context.Context) (*cache.NavSnapshot, error) {
	if s.navCache != nil {
		return s.navCache.Get(ctx)
	}

	items, err := s.queries.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	pages, err := s.queries.ListPlacedPages(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := s.queries.ListPageRefs(ctx)
	if err != nil {
		return nil, err
	}
	return &cache.NavSnapshot{Items: items, Pages: pages, PageRefs: refs}, nil
}

// Tree returns the full menu forest from a fresh snapshot of the store.
func (s *NavService) Tree(ctx context.Context) ([]NavNode, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading navigation snapshot: %w", err)
	}
	return BuildTree(snap.Items), nil
}

func (s *NavService) invalidate() {
	if s.navCache != nil {
		s.navCache.Invalidate()
	}
}

// CreateItemParams holds the caller-facing fields for creating a menu item.
type CreateItemParams struct {
	Title       string
	Href        *string
	Icon        *string
	ParentID    *int64
	TargetBlank bool
	Visibility  model.VisibilityRule
	IsActive    bool
	CmsPageID   *int64
}

// validateItem checks the write-time invariants shared by create and
// update. Unknown parents are rejected here rather than silently
// becoming roots later.
func (s *NavService) validateItem(ctx context.Context, id int64, title string, icon *string, parentID *int64) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if icon != nil && *icon != "" && !model.IsValidIcon(*icon) {
		return ErrInvalidIcon
	}
	if parentID != nil {
		if *parentID == id {
			return ErrSelfParent
		}
		if _, err := s.queries.GetMenuItemByID(ctx, *parentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrParentNotFound
			}
			return fmt.Errorf("checking parent: %w", err)
		}
	}
	return nil
}

// CreateItem validates and inserts a menu item. The new item is placed
// last among its siblings.
func (s *NavService) CreateItem(ctx context.Context, arg CreateItemParams) (store.MenuItem, error) {
	if err := s.validateItem(ctx, 0, arg.Title, arg.Icon, arg.ParentID); err != nil {
		return store.MenuItem{}, err
	}

	parentID := util.NullInt64FromPtr(arg.ParentID)
	maxOrder, err := s.queries.GetMaxMenuItemOrder(ctx, parentID)
	if err != nil {
		return store.MenuItem{}, fmt.Errorf("getting max order: %w", err)
	}

	now := time.Now()
	item, err := s.queries.CreateMenuItem(ctx, store.CreateMenuItemParams{
		Title:       strings.TrimSpace(arg.Title),
		Href:        util.NullStringFromPtr(arg.Href),
		Icon:        util.NullStringFromPtr(arg.Icon),
		NavOrder:    maxOrder + 1,
		ParentID:    parentID,
		TargetBlank: arg.TargetBlank,
		Visibility:  arg.Visibility.Marshal(),
		IsActive:    arg.IsActive,
		CmsPageID:   util.NullInt64FromPtr(arg.CmsPageID),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.MenuItem{}, fmt.Errorf("creating menu item: %w", err)
	}

	s.invalidate()
	return item, nil
}

// UpdateItemParams holds the caller-facing fields for updating a menu item.
type UpdateItemParams struct {
	ID          int64
	Title       string
	Href        *string
	Icon        *string
	ParentID    *int64
	TargetBlank bool
	Visibility  model.VisibilityRule
	IsActive    bool
	CmsPageID   *int64
}

// UpdateItem validates and updates a menu item's fields. Ordering is
// changed only through MoveUp and MoveDown.
func (s *NavService) UpdateItem(ctx context.Context, arg UpdateItemParams) (store.MenuItem, error) {
	if _, err := s.queries.GetMenuItemByID(ctx, arg.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.MenuItem{}, ErrItemNotFound
		}
		return store.MenuItem{}, fmt.Errorf("loading menu item: %w", err)
	}
	if err := s.validateItem(ctx, arg.ID, arg.Title, arg.Icon, arg.ParentID); err != nil {
		return store.MenuItem{}, err
	}

	item, err := s.queries.UpdateMenuItem(ctx, store.UpdateMenuItemParams{
		ID:          arg.ID,
		Title:       strings.TrimSpace(arg.Title),
		Href:        util.NullStringFromPtr(arg.Href),
		Icon:        util.NullStringFromPtr(arg.Icon),
		ParentID:    util.NullInt64FromPtr(arg.ParentID),
		TargetBlank: arg.TargetBlank,
		Visibility:  arg.Visibility.Marshal(),
		IsActive:    arg.IsActive,
		CmsPageID:   util.NullInt64FromPtr(arg.CmsPageID),
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return store.MenuItem{}, fmt.Errorf("updating menu item: %w", err)
	}

	s.invalidate()
	return item, nil
}

// DeleteItem removes a menu item. Its direct children are re-parented
// to the deleted item's own parent so no row is ever left pointing at
// a missing record. Both writes run in one transaction.
func (s *NavService) DeleteItem(ctx context.Context, id int64) error {
	item, err := s.queries.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotFound
		}
		return fmt.Errorf("loading menu item: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	if err := qtx.ReparentMenuItemChildren(ctx, store.ReparentMenuItemChildrenParams{
		ParentID:    id,
		NewParentID: item.ParentID,
		UpdatedAt:   time.Now(),
	}); err != nil {
		return fmt.Errorf("re-parenting children: %w", err)
	}
	if err := qtx.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	s.invalidate()
	return nil
}

// MoveUp swaps a menu item's nav_order with its previous sibling.
// Moving the first sibling up is a no-op.
func (s *NavService) MoveUp(ctx context.Context, id int64) error {
	return s.swapWithNeighbor(ctx, id, -1)
}

// MoveDown swaps a menu item's nav_order with its next sibling.
// Moving the last sibling down is a no-op.
func (s *NavService) MoveDown(ctx context.Context, id int64) error {
	return s.swapWithNeighbor(ctx, id, +1)
}

// swapWithNeighbor exchanges the nav_order values of the item and its
// sibling at offset delta. The two updates run in a single transaction
// so a crash cannot leave only one of them applied. Applying the same
// move twice restores the original ordering.
func (s *NavService) swapWithNeighbor(ctx context.Context, id int64, delta int) error {
	items, err := s.queries.ListMenuItems(ctx)
	if err != nil {
		return fmt.Errorf("listing menu items: %w", err)
	}

	var target *store.MenuItem
	for i := range items {
		if items[i].ID == id {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return ErrItemNotFound
	}

	// Sibling list in display order; the list query already sorts by
	// nav_order with id as the tie-break.
	var siblings []store.MenuItem
	idx := -1
	for _, it := range items {
		if sameParent(it.ParentID, target.ParentID) {
			if it.ID == id {
				idx = len(siblings)
			}
			siblings = append(siblings, it)
		}
	}

	other := idx + delta
	if other < 0 || other >= len(siblings) {
		return nil // boundary: nothing to do
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	qtx := s.queries.WithTx(tx)
	if err := qtx.UpdateMenuItemOrder(ctx, store.UpdateMenuItemOrderParams{
		ID:        siblings[idx].ID,
		NavOrder:  siblings[other].NavOrder,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("updating item order: %w", err)
	}
	if err := qtx.UpdateMenuItemOrder(ctx, store.UpdateMenuItemOrderParams{
		ID:        siblings[other].ID,
		NavOrder:  siblings[idx].NavOrder,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("updating sibling order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing swap: %w", err)
	}

	s.invalidate()
	return nil
}

func sameParent(a, b sql.NullInt64) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Int64 == b.Int64
}
