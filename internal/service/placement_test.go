// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/testutil"
)

func placedPage(id int64, title, slug, placement string, parentRef string, order int64) store.Page {
	p := store.Page{
		ID:        id,
		Title:     title,
		Slug:      slug,
		Status:    model.PageStatusPublished,
		Placement: placement,
		NavOrder:  sql.NullInt64{Int64: order, Valid: true},
	}
	if parentRef != "" {
		p.ParentNavRef = sql.NullString{String: parentRef, Valid: true}
	}
	return p
}

func TestComposeNavNestsUnderMatchedItem(t *testing.T) {
	items := []store.MenuItem{
		navItem(1, "Home", 0, sql.NullInt64{}),
		navItem(2, "Events", 1, sql.NullInt64{}),
	}
	pages := []store.Page{
		placedPage(10, "SPL Rulebook", "spl-rulebook", model.PlacementTopNav, "2", 0),
	}

	view := composeNav(items, pages, nil, model.Anonymous)

	if len(view.Menu) != 2 {
		t.Fatalf("len(view.Menu) = %d, want 2", len(view.Menu))
	}
	events := view.Menu[1]
	if len(events.Children) != 1 {
		t.Fatalf("len(events.Children) = %d, want 1", len(events.Children))
	}
	if events.Children[0].Title != "SPL Rulebook" {
		t.Errorf("nested title = %q, want %q", events.Children[0].Title, "SPL Rulebook")
	}
	if events.Children[0].Href != "/spl-rulebook" {
		t.Errorf("nested href = %q, want %q", events.Children[0].Href, "/spl-rulebook")
	}
}

func TestComposeNavDanglingRefFallsToTopLevel(t *testing.T) {
	items := []store.MenuItem{
		navItem(1, "Home", 0, sql.NullInt64{}),
	}
	pages := []store.Page{
		placedPage(10, "Orphan", "orphan", model.PlacementTopNav, "no-such-item", 0),
		placedPage(11, "Ghost", "ghost", model.PlacementTopNav, "999", 1),
	}

	view := composeNav(items, pages, nil, model.Anonymous)

	// Both pages render at the top level after the menu items.
	if len(view.Menu) != 3 {
		t.Fatalf("len(view.Menu) = %d, want 3", len(view.Menu))
	}
	if view.Menu[1].Title != "Orphan" || view.Menu[2].Title != "Ghost" {
		t.Errorf("top-level entries = %q, %q, want Orphan, Ghost",
			view.Menu[1].Title, view.Menu[2].Title)
	}
}

func TestComposeNavZonesAndNavTitle(t *testing.T) {
	footer := placedPage(20, "Privacy Policy", "privacy", model.PlacementFooter, "", 0)
	footer.NavTitle = sql.NullString{String: "Privacy", Valid: true}

	pages := []store.Page{
		footer,
		placedPage(21, "Season Standings", "standings", model.PlacementSubNav, "", 0),
	}

	view := composeNav(nil, pages, nil, model.Anonymous)

	if len(view.Footer) != 1 {
		t.Fatalf("len(view.Footer) = %d, want 1", len(view.Footer))
	}
	if view.Footer[0].Title != "Privacy" {
		t.Errorf("footer title = %q, want %q (nav_title wins)", view.Footer[0].Title, "Privacy")
	}
	if len(view.SubNav) != 1 || view.SubNav[0].Href != "/standings" {
		t.Errorf("sub nav = %+v, want one entry for /standings", view.SubNav)
	}
	if len(view.Menu) != 0 {
		t.Errorf("len(view.Menu) = %d, want 0", len(view.Menu))
	}
}

func TestComposeNavResolvesLinkedPageSlug(t *testing.T) {
	linked := navItem(1, "About", 0, sql.NullInt64{})
	linked.CmsPageID = sql.NullInt64{Int64: 42, Valid: true}
	linked.Href = sql.NullString{String: "/stale-href", Valid: true}

	refs := []store.PageRef{{ID: 42, Slug: "about-us"}}

	view := composeNav([]store.MenuItem{linked}, nil, refs, model.Anonymous)

	if len(view.Menu) != 1 {
		t.Fatalf("len(view.Menu) = %d, want 1", len(view.Menu))
	}
	if view.Menu[0].Href != "/about-us" {
		t.Errorf("href = %q, want %q", view.Menu[0].Href, "/about-us")
	}
}

func TestComposeNavPrunesHiddenItems(t *testing.T) {
	hidden := navItem(2, "Retailer Desk", 1, sql.NullInt64{})
	hidden.Visibility = model.RestrictedRule(model.ClassRetailer).Marshal()

	items := []store.MenuItem{
		navItem(1, "Home", 0, sql.NullInt64{}),
		hidden,
	}

	anon := composeNav(items, nil, nil, model.Anonymous)
	if len(anon.Menu) != 1 {
		t.Fatalf("anonymous menu length = %d, want 1", len(anon.Menu))
	}

	retailer := composeNav(items, nil, nil, model.Viewer{Authenticated: true, Classification: model.ClassRetailer})
	if len(retailer.Menu) != 2 {
		t.Fatalf("retailer menu length = %d, want 2", len(retailer.Menu))
	}
}

func TestAssignPlacement(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)

	if err := store.Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	admin, err := queries.GetUserByEmail(ctx, store.DefaultAdminEmail)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}

	content := NewContentService(db, nil, nil)
	page, err := content.CreatePage(ctx, CreatePageParams{
		Title:    "Rulebook",
		Body:     "# Rules",
		Status:   model.PageStatusPublished,
		AuthorID: admin.ID,
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	nav := NewNavService(db, nil)

	// Unknown placement is rejected.
	if _, err := nav.AssignPlacement(ctx, AssignPlacementParams{
		PageID:    page.ID,
		Placement: "sidebar",
	}); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("bad placement: err = %v, want ErrInvalidPlacement", err)
	}

	// A parent reference that matches nothing is stored as given.
	ref := "future-menu-item"
	placed, err := nav.AssignPlacement(ctx, AssignPlacementParams{
		PageID:       page.ID,
		Placement:    model.PlacementTopNav,
		ParentNavRef: &ref,
	})
	if err != nil {
		t.Fatalf("AssignPlacement: %v", err)
	}
	if placed.Placement != model.PlacementTopNav {
		t.Errorf("placement = %q, want %q", placed.Placement, model.PlacementTopNav)
	}
	if !placed.ParentNavRef.Valid || placed.ParentNavRef.String != ref {
		t.Errorf("parent ref = %v, want %q stored untouched", placed.ParentNavRef, ref)
	}

	// Missing page.
	if _, err := nav.AssignPlacement(ctx, AssignPlacementParams{
		PageID:    99999,
		Placement: model.PlacementFooter,
	}); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("missing page: err = %v, want ErrPageNotFound", err)
	}
}
