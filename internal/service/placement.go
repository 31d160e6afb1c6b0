// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/util"
)

// Placement errors.
var (
	ErrInvalidPlacement = errors.New("unknown navigation placement")
	ErrPageNotFound     = errors.New("page not found")
)

// AssignPlacementParams holds a page's navigation placement request.
// ParentNavRef is an opaque reference into the menu; it is stored as
// given and resolved only at render time, so a page may be placed
// under a menu item that does not exist yet.
type AssignPlacementParams struct {
	PageID       int64
	Placement    string
	ParentNavRef *string
	NavOrder     *int64
	NavTitle     *string
}

// AssignPlacement sets where a content page appears in site
// navigation. Only the placement value itself is validated; the
// parent reference is deliberately left unchecked.
func (s *NavService) AssignPlacement(ctx context.Context, arg AssignPlacementParams) (store.Page, error) {
	if !model.IsValidPlacement(arg.Placement) {
		return store.Page{}, ErrInvalidPlacement
	}

	page, err := s.queries.UpdatePageNavigation(ctx, store.UpdatePageNavigationParams{
		ID:           arg.PageID,
		Placement:    arg.Placement,
		ParentNavRef: util.NullStringFromPtr(arg.ParentNavRef),
		NavOrder:     util.NullInt64FromPtr(arg.NavOrder),
		NavTitle:     util.NullStringFromPtr(arg.NavTitle),
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Page{}, ErrPageNotFound
		}
		return store.Page{}, fmt.Errorf("updating page placement: %w", err)
	}

	s.invalidate()
	return page, nil
}

// NavEntry is a single rendered navigation link.
type NavEntry struct {
	Title       string     `json:"title"`
	Href        string     `json:"href"`
	Icon        string     `json:"icon,omitempty"`
	TargetBlank bool       `json:"target_blank,omitempty"`
	Children    []NavEntry `json:"children,omitempty"`
}

// NavView is the complete navigation for one viewer: the hierarchical
// main menu plus the flat secondary and footer page lists.
type NavView struct {
	Menu   []NavEntry `json:"menu"`
	SubNav []NavEntry `json:"sub_nav"`
	Footer []NavEntry `json:"footer"`
}

// ComposeNav renders the navigation a viewer is allowed to see. Menu
// items form the main menu tree; published pages placed in top_nav are
// merged into it, nesting under the menu item whose id matches their
// parent reference. A reference that matches nothing quietly demotes
// the page to the top level of its zone. SubNav and footer placements
// are flat lists.
func (s *NavService) ComposeNav(ctx context.Context, viewer model.Viewer) (NavView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return NavView{}, fmt.Errorf("loading navigation snapshot: %w", err)
	}
	return composeNav(snap.Items, snap.Pages, snap.PageRefs, viewer), nil
}

func composeNav(items []store.MenuItem, pages []store.Page, refs []store.PageRef, viewer model.Viewer) NavView {
	slugs := make(map[int64]string, len(refs))
	for _, r := range refs {
		slugs[r.ID] = r.Slug
	}

	tree := VisibleTree(BuildTree(items), viewer)

	// Group visible placed pages by zone; the page list is already in
	// nav_order, so grouping preserves it.
	byZone := make(map[string][]store.Page, 3)
	for _, p := range pages {
		byZone[p.Placement] = append(byZone[p.Placement], p)
	}

	view := NavView{
		Menu:   make([]NavEntry, 0, len(tree)),
		SubNav: pageEntries(byZone[model.PlacementSubNav]),
		Footer: pageEntries(byZone[model.PlacementFooter]),
	}

	// Pages nested under a menu item, keyed by the item id their
	// parent reference names.
	nested := make(map[int64][]store.Page)
	var loose []store.Page
	for _, p := range byZone[model.PlacementTopNav] {
		if p.ParentNavRef.Valid {
			if id, err := strconv.ParseInt(p.ParentNavRef.String, 10, 64); err == nil && hasItem(items, id) {
				nested[id] = append(nested[id], p)
				continue
			}
		}
		loose = append(loose, p)
	}

	for _, n := range tree {
		view.Menu = append(view.Menu, menuEntry(n, slugs, nested))
	}
	view.Menu = append(view.Menu, pageEntries(loose)...)

	return view
}

func hasItem(items []store.MenuItem, id int64) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func menuEntry(n NavNode, slugs map[int64]string, nested map[int64][]store.Page) NavEntry {
	e := NavEntry{
		Title:       n.Item.Title,
		Href:        n.Item.Href.String,
		Icon:        n.Item.Icon.String,
		TargetBlank: n.Item.TargetBlank,
	}
	// A linked page wins over an explicit href.
	if n.Item.CmsPageID.Valid {
		if slug, ok := slugs[n.Item.CmsPageID.Int64]; ok {
			e.Href = "/" + slug
		}
	}
	for _, c := range n.Children {
		e.Children = append(e.Children, menuEntry(c, slugs, nested))
	}
	e.Children = append(e.Children, pageEntries(nested[n.Item.ID])...)
	return e
}

func pageEntries(pages []store.Page) []NavEntry {
	entries := make([]NavEntry, 0, len(pages))
	for _, p := range pages {
		title := p.Title
		if p.NavTitle.Valid && p.NavTitle.String != "" {
			title = p.NavTitle.String
		}
		entries = append(entries, NavEntry{Title: title, Href: "/" + p.Slug})
	}
	return entries
}
