// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// MenuItem represents a row in the menu_items table.
type MenuItem struct {
	ID          int64
	Title       string
	Href        sql.NullString
	Icon        sql.NullString
	NavOrder    int64
	ParentID    sql.NullInt64
	TargetBlank bool
	Visibility  string
	IsActive    bool
	CmsPageID   sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const menuItemColumns = `id, title, href, icon, nav_order, parent_id, target_blank,
	visibility, is_active, cms_page_id, created_at, updated_at`

func scanMenuItem(row interface{ Scan(...any) error }) (MenuItem, error) {
	var i MenuItem
	err := row.Scan(
		&i.ID, &i.Title, &i.Href, &i.Icon, &i.NavOrder, &i.ParentID,
		&i.TargetBlank, &i.Visibility, &i.IsActive, &i.CmsPageID,
		&i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

// ListMenuItems returns all menu items ordered by nav_order. Ties are
// broken by insertion order (id) so the ordering is reproducible.
func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items ORDER BY nav_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		i, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// GetMenuItemByID returns a single menu item.
func (q *Queries) GetMenuItemByID(ctx context.Context, id int64) (MenuItem, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = ?`, id)
	return scanMenuItem(row)
}

// CreateMenuItemParams holds the fields for creating a menu item.
type CreateMenuItemParams struct {
	Title       string
	Href        sql.NullString
	Icon        sql.NullString
	NavOrder    int64
	ParentID    sql.NullInt64
	TargetBlank bool
	Visibility  string
	IsActive    bool
	CmsPageID   sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateMenuItem inserts a menu item and returns the stored row.
func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (title, href, icon, nav_order, parent_id,
			target_blank, visibility, is_active, cms_page_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+menuItemColumns,
		arg.Title, arg.Href, arg.Icon, arg.NavOrder, arg.ParentID,
		arg.TargetBlank, arg.Visibility, arg.IsActive, arg.CmsPageID,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return scanMenuItem(row)
}

// UpdateMenuItemParams holds the fields for updating a menu item.
type UpdateMenuItemParams struct {
	ID          int64
	Title       string
	Href        sql.NullString
	Icon        sql.NullString
	ParentID    sql.NullInt64
	TargetBlank bool
	Visibility  string
	IsActive    bool
	CmsPageID   sql.NullInt64
	UpdatedAt   time.Time
}

// UpdateMenuItem updates a menu item's editable fields. The nav_order
// is changed only through UpdateMenuItemOrder.
func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE menu_items
		SET title = ?, href = ?, icon = ?, parent_id = ?, target_blank = ?,
			visibility = ?, is_active = ?, cms_page_id = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+menuItemColumns,
		arg.Title, arg.Href, arg.Icon, arg.ParentID, arg.TargetBlank,
		arg.Visibility, arg.IsActive, arg.CmsPageID, arg.UpdatedAt, arg.ID,
	)
	return scanMenuItem(row)
}

// UpdateMenuItemOrderParams holds the fields for an order update.
type UpdateMenuItemOrderParams struct {
	ID        int64
	NavOrder  int64
	UpdatedAt time.Time
}

// UpdateMenuItemOrder sets a menu item's nav_order value.
func (q *Queries) UpdateMenuItemOrder(ctx context.Context, arg UpdateMenuItemOrderParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE menu_items SET nav_order = ?, updated_at = ? WHERE id = ?`,
		arg.NavOrder, arg.UpdatedAt, arg.ID)
	return err
}

// ReparentMenuItemChildrenParams holds the fields for re-parenting
// the children of a deleted item.
type ReparentMenuItemChildrenParams struct {
	ParentID    int64
	NewParentID sql.NullInt64
	UpdatedAt   time.Time
}

// ReparentMenuItemChildren moves all direct children of an item to a
// new parent. Used on delete so children are never left pointing at a
// missing row.
func (q *Queries) ReparentMenuItemChildren(ctx context.Context, arg ReparentMenuItemChildrenParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE menu_items SET parent_id = ?, updated_at = ? WHERE parent_id = ?`,
		arg.NewParentID, arg.UpdatedAt, arg.ParentID)
	return err
}

// DeleteMenuItem removes a menu item.
func (q *Queries) DeleteMenuItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	return err
}

// GetMaxMenuItemOrder returns the highest nav_order among the direct
// children of the given parent, or -1 when there are none.
func (q *Queries) GetMaxMenuItemOrder(ctx context.Context, parentID sql.NullInt64) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(nav_order), -1) FROM menu_items WHERE parent_id IS ?`,
		parentID).Scan(&max)
	return max, err
}
