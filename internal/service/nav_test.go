// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/testutil"
)

func navItem(id int64, title string, order int64, parent sql.NullInt64) store.MenuItem {
	now := time.Now()
	return store.MenuItem{
		ID:         id,
		Title:      title,
		NavOrder:   order,
		ParentID:   parent,
		Visibility: model.PublicRule().Marshal(),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func child(parentID int64) sql.NullInt64 {
	return sql.NullInt64{Int64: parentID, Valid: true}
}

func TestBuildTree(t *testing.T) {
	items := []store.MenuItem{
		navItem(1, "Home", 0, sql.NullInt64{}),
		navItem(2, "Events", 1, sql.NullInt64{}),
		navItem(3, "SPL Rules", 0, child(2)),
	}

	tree := BuildTree(items)

	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2", len(tree))
	}
	if tree[0].Item.Title != "Home" {
		t.Errorf("tree[0].Item.Title = %q, want %q", tree[0].Item.Title, "Home")
	}
	if tree[1].Item.Title != "Events" {
		t.Errorf("tree[1].Item.Title = %q, want %q", tree[1].Item.Title, "Events")
	}
	if len(tree[1].Children) != 1 {
		t.Fatalf("len(tree[1].Children) = %d, want 1", len(tree[1].Children))
	}
	if got := tree[1].Children[0].Item.Title; got != "SPL Rules" {
		t.Errorf("tree[1].Children[0].Item.Title = %q, want %q", got, "SPL Rules")
	}
}

func TestBuildTreeDanglingParent(t *testing.T) {
	// Item 2 points at an id that is not in the set. It must still be
	// in the output, promoted to a root.
	items := []store.MenuItem{
		navItem(1, "Home", 0, sql.NullInt64{}),
		navItem(2, "Lost", 1, child(999)),
	}

	tree := BuildTree(items)

	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2 (dangling parent should become root)", len(tree))
	}
	if tree[1].Item.Title != "Lost" {
		t.Errorf("tree[1].Item.Title = %q, want %q", tree[1].Item.Title, "Lost")
	}
}

func TestBuildTreeSelfParent(t *testing.T) {
	items := []store.MenuItem{
		navItem(1, "Loop", 0, child(1)),
	}

	tree := BuildTree(items)

	if len(tree) != 1 {
		t.Fatalf("len(tree) = %d, want 1", len(tree))
	}
	if len(tree[0].Children) != 0 {
		t.Errorf("len(tree[0].Children) = %d, want 0", len(tree[0].Children))
	}
}

func TestBuildTreeSortsSiblings(t *testing.T) {
	// Roots arrive out of order; children of 3 share nav_order so
	// their input order must be preserved.
	items := []store.MenuItem{
		navItem(3, "Third listed first", 2, sql.NullInt64{}),
		navItem(1, "First", 0, sql.NullInt64{}),
		navItem(2, "Second", 1, sql.NullInt64{}),
		navItem(4, "Tie A", 5, child(3)),
		navItem(5, "Tie B", 5, child(3)),
	}

	tree := BuildTree(items)

	if len(tree) != 3 {
		t.Fatalf("len(tree) = %d, want 3", len(tree))
	}
	wantOrder := []string{"First", "Second", "Third listed first"}
	for i, want := range wantOrder {
		if tree[i].Item.Title != want {
			t.Errorf("tree[%d].Item.Title = %q, want %q", i, tree[i].Item.Title, want)
		}
	}
	kids := tree[2].Children
	if len(kids) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(kids))
	}
	if kids[0].Item.Title != "Tie A" || kids[1].Item.Title != "Tie B" {
		t.Errorf("tie-break order = %q, %q, want %q, %q",
			kids[0].Item.Title, kids[1].Item.Title, "Tie A", "Tie B")
	}
}

func countNodes(nodes []NavNode) int {
	n := len(nodes)
	for _, node := range nodes {
		n += countNodes(node.Children)
	}
	return n
}

func TestBuildTreePreservesNodeCount(t *testing.T) {
	items := []store.MenuItem{
		navItem(1, "A", 0, sql.NullInt64{}),
		navItem(2, "B", 1, child(1)),
		navItem(3, "C", 2, child(1)),
		navItem(4, "D", 0, child(3)),
		navItem(5, "E", 3, child(42)), // dangling
		navItem(6, "F", 4, child(6)),  // self
	}

	tree := BuildTree(items)

	if got := countNodes(tree); got != len(items) {
		t.Errorf("countNodes(tree) = %d, want %d", got, len(items))
	}
}

func TestVisibleTree(t *testing.T) {
	restricted := navItem(2, "Judge Portal", 1, sql.NullInt64{})
	restricted.Visibility = model.RestrictedRule(model.ClassJudge).Marshal()
	inactive := navItem(3, "Old Page", 2, sql.NullInt64{})
	inactive.IsActive = false
	nested := navItem(4, "Scoring Sheets", 0, child(2))

	items := []store.MenuItem{
		navItem(1, "Home", 0, sql.NullInt64{}),
		restricted,
		inactive,
		nested,
	}
	tree := BuildTree(items)

	tests := []struct {
		name   string
		viewer model.Viewer
		want   []string
	}{
		{"anonymous", model.Anonymous, []string{"Home"}},
		{"competitor", model.Viewer{Authenticated: true, Classification: model.ClassCompetitor}, []string{"Home"}},
		{"judge", model.Viewer{Authenticated: true, Classification: model.ClassJudge}, []string{"Home", "Judge Portal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := VisibleTree(tree, tt.viewer)
			if len(visible) != len(tt.want) {
				t.Fatalf("len(visible) = %d, want %d", len(visible), len(tt.want))
			}
			for i, want := range tt.want {
				if visible[i].Item.Title != want {
					t.Errorf("visible[%d].Item.Title = %q, want %q", i, visible[i].Item.Title, want)
				}
			}
		})
	}

	// The nested item survives under its visible parent.
	judgeView := VisibleTree(tree, model.Viewer{Authenticated: true, Classification: model.ClassJudge})
	if len(judgeView[1].Children) != 1 || judgeView[1].Children[0].Item.Title != "Scoring Sheets" {
		t.Errorf("judge view should keep the nested item under Judge Portal")
	}
}

func setupNavService(t *testing.T) (*NavService, *store.Queries, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	return NewNavService(db, nil), store.New(db), cleanup
}

func mustCreateItem(t *testing.T, svc *NavService, title string, parentID *int64) store.MenuItem {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), CreateItemParams{
		Title:      title,
		ParentID:   parentID,
		Visibility: model.PublicRule(),
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("CreateItem(%q): %v", title, err)
	}
	return item
}

func TestCreateItemValidation(t *testing.T) {
	svc, _, cleanup := setupNavService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, CreateItemParams{Title: "  "}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("blank title: err = %v, want ErrTitleRequired", err)
	}

	badIcon := "sparkles"
	if _, err := svc.CreateItem(ctx, CreateItemParams{Title: "X", Icon: &badIcon}); !errors.Is(err, ErrInvalidIcon) {
		t.Errorf("bad icon: err = %v, want ErrInvalidIcon", err)
	}

	ghost := int64(999)
	if _, err := svc.CreateItem(ctx, CreateItemParams{Title: "X", ParentID: &ghost}); !errors.Is(err, ErrParentNotFound) {
		t.Errorf("ghost parent: err = %v, want ErrParentNotFound", err)
	}
}

func TestCreateItemAppendsAfterSiblings(t *testing.T) {
	svc, _, cleanup := setupNavService(t)
	defer cleanup()

	first := mustCreateItem(t, svc, "First", nil)
	second := mustCreateItem(t, svc, "Second", nil)

	if second.NavOrder <= first.NavOrder {
		t.Errorf("second.NavOrder = %d, want > %d", second.NavOrder, first.NavOrder)
	}

	// Children get their own order sequence.
	kid := mustCreateItem(t, svc, "Kid", &first.ID)
	if kid.NavOrder != 0 {
		t.Errorf("kid.NavOrder = %d, want 0", kid.NavOrder)
	}
}

func TestUpdateItemSelfParent(t *testing.T) {
	svc, _, cleanup := setupNavService(t)
	defer cleanup()

	item := mustCreateItem(t, svc, "Solo", nil)

	_, err := svc.UpdateItem(context.Background(), UpdateItemParams{
		ID:         item.ID,
		Title:      "Solo",
		ParentID:   &item.ID,
		Visibility: model.PublicRule(),
		IsActive:   true,
	})
	if !errors.Is(err, ErrSelfParent) {
		t.Errorf("self parent: err = %v, want ErrSelfParent", err)
	}
}

func TestDeleteItemReparentsChildren(t *testing.T) {
	svc, queries, cleanup := setupNavService(t)
	defer cleanup()
	ctx := context.Background()

	root := mustCreateItem(t, svc, "Root", nil)
	middle := mustCreateItem(t, svc, "Middle", &root.ID)
	leaf := mustCreateItem(t, svc, "Leaf", &middle.ID)

	if err := svc.DeleteItem(ctx, middle.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, err := queries.GetMenuItemByID(ctx, leaf.ID)
	if err != nil {
		t.Fatalf("GetMenuItemByID: %v", err)
	}
	if !got.ParentID.Valid || got.ParentID.Int64 != root.ID {
		t.Errorf("leaf.ParentID = %v, want %d", got.ParentID, root.ID)
	}
}

func siblingTitles(t *testing.T, svc *NavService) []string {
	t.Helper()
	tree, err := svc.Tree(context.Background())
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	titles := make([]string, len(tree))
	for i, n := range tree {
		titles[i] = n.Item.Title
	}
	return titles
}

func TestMoveUpAndDown(t *testing.T) {
	svc, _, cleanup := setupNavService(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateItem(t, svc, "A", nil)
	b := mustCreateItem(t, svc, "B", nil)
	mustCreateItem(t, svc, "C", nil)

	if err := svc.MoveUp(ctx, b.ID); err != nil {
		t.Fatalf("MoveUp: %v", err)
	}
	got := siblingTitles(t, svc)
	want := []string{"B", "A", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after MoveUp: order = %v, want %v", got, want)
		}
	}

	// Same move again restores the original order.
	if err := svc.MoveDown(ctx, b.ID); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}
	got = siblingTitles(t, svc)
	want = []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after MoveDown: order = %v, want %v", got, want)
		}
	}
}

func TestMoveUpAtBoundary(t *testing.T) {
	svc, _, cleanup := setupNavService(t)
	defer cleanup()
	ctx := context.Background()

	first := mustCreateItem(t, svc, "First", nil)
	mustCreateItem(t, svc, "Second", nil)

	if err := svc.MoveUp(ctx, first.ID); err != nil {
		t.Fatalf("MoveUp at boundary: %v", err)
	}
	got := siblingTitles(t, svc)
	if got[0] != "First" || got[1] != "Second" {
		t.Errorf("order after boundary MoveUp = %v, want unchanged", got)
	}
}

func TestMoveDownAtBoundary(t *testing.T) {
	svc, _, cleanup := setupNavService(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateItem(t, svc, "First", nil)
	last := mustCreateItem(t, svc, "Last", nil)

	if err := svc.MoveDown(ctx, last.ID); err != nil {
		t.Fatalf("MoveDown at boundary: %v", err)
	}
	got := siblingTitles(t, svc)
	if got[0] != "First" || got[1] != "Last" {
		t.Errorf("order after boundary MoveDown = %v, want unchanged", got)
	}
}

func TestMoveOnlyAffectsSiblings(t *testing.T) {
	svc, _, cleanup := setupNavService(t)
	defer cleanup()
	ctx := context.Background()

	root := mustCreateItem(t, svc, "Root", nil)
	mustCreateItem(t, svc, "Other", nil)
	kid := mustCreateItem(t, svc, "Kid", &root.ID)

	// The only child of Root has no sibling to swap with, even though
	// top-level items exist.
	if err := svc.MoveUp(ctx, kid.ID); err != nil {
		t.Fatalf("MoveUp: %v", err)
	}
	if err := svc.MoveDown(ctx, kid.ID); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}

	got := siblingTitles(t, svc)
	if got[0] != "Root" || got[1] != "Other" {
		t.Errorf("top-level order = %v, want [Root Other]", got)
	}
}

func TestMoveMissingItem(t *testing.T) {
	svc, _, cleanup := setupNavService(t)
	defer cleanup()

	if err := svc.MoveUp(context.Background(), 12345); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("MoveUp(missing): err = %v, want ErrItemNotFound", err)
	}
}
