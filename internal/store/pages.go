// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Page represents a row in the pages table.
type Page struct {
	ID           int64
	Title        string
	Slug         string
	Body         string
	BodyHTML     string
	Status       string
	AuthorID     int64
	Placement    string
	ParentNavRef sql.NullString
	NavOrder     sql.NullInt64
	NavTitle     sql.NullString
	PublishedAt  sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const pageColumns = `id, title, slug, body, body_html, status, author_id,
	placement, parent_nav_ref, nav_order, nav_title, published_at, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (Page, error) {
	var p Page
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Body, &p.BodyHTML, &p.Status, &p.AuthorID,
		&p.Placement, &p.ParentNavRef, &p.NavOrder, &p.NavTitle,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (q *Queries) queryPages(ctx context.Context, query string, args ...any) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ListPagesParams holds pagination for listing pages.
type ListPagesParams struct {
	Limit  int64
	Offset int64
}

// ListPages returns pages ordered by most recently updated.
func (q *Queries) ListPages(ctx context.Context, arg ListPagesParams) ([]Page, error) {
	return q.queryPages(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY updated_at DESC LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
}

// ListPublishedPages returns all published pages.
func (q *Queries) ListPublishedPages(ctx context.Context) ([]Page, error) {
	return q.queryPages(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE status = 'published' ORDER BY title`)
}

// PageRef is an id/slug pair used to resolve page links without
// loading the full row.
type PageRef struct {
	ID   int64
	Slug string
}

// ListPageRefs returns the id and slug of every page.
func (q *Queries) ListPageRefs(ctx context.Context) ([]PageRef, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, slug FROM pages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var refs []PageRef
	for rows.Next() {
		var r PageRef
		if err := rows.Scan(&r.ID, &r.Slug); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// ListPlacedPages returns published pages assigned to a navigation
// placement, ordered by nav_order with id as the tie-breaker.
func (q *Queries) ListPlacedPages(ctx context.Context) ([]Page, error) {
	return q.queryPages(ctx, `
		SELECT `+pageColumns+` FROM pages
		WHERE status = 'published' AND placement != 'none'
		ORDER BY COALESCE(nav_order, 0), id`)
}

// GetPageByID returns a single page.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	return scanPage(row)
}

// GetPageBySlug returns a single page by slug.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	return scanPage(row)
}

// PageSlugExists reports whether a page with the given slug exists.
func (q *Queries) PageSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM pages WHERE slug = ?`, slug).Scan(&n)
	return n != 0, err
}

// PageSlugExistsExcludingParams identifies a slug check that ignores one page.
type PageSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// PageSlugExistsExcluding reports whether another page uses the slug.
func (q *Queries) PageSlugExistsExcluding(ctx context.Context, arg PageSlugExistsExcludingParams) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM pages WHERE slug = ? AND id != ?`, arg.Slug, arg.ID).Scan(&n)
	return n != 0, err
}

// CreatePageParams holds the fields for creating a page.
type CreatePageParams struct {
	Title       string
	Slug        string
	Body        string
	BodyHTML    string
	Status      string
	AuthorID    int64
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePage inserts a page and returns the stored row. Navigation
// placement fields start at their defaults (no placement).
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO pages (title, slug, body, body_html, status, author_id,
			published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+pageColumns,
		arg.Title, arg.Slug, arg.Body, arg.BodyHTML, arg.Status, arg.AuthorID,
		arg.PublishedAt, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanPage(row)
}

// UpdatePageParams holds the fields for updating a page's content.
type UpdatePageParams struct {
	ID          int64
	Title       string
	Slug        string
	Body        string
	BodyHTML    string
	Status      string
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
}

// UpdatePage updates a page's content fields, leaving navigation
// placement untouched.
func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE pages
		SET title = ?, slug = ?, body = ?, body_html = ?, status = ?,
			published_at = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+pageColumns,
		arg.Title, arg.Slug, arg.Body, arg.BodyHTML, arg.Status,
		arg.PublishedAt, arg.UpdatedAt, arg.ID,
	)
	return scanPage(row)
}

// UpdatePageNavigationParams holds a page's navigation placement fields.
type UpdatePageNavigationParams struct {
	ID           int64
	Placement    string
	ParentNavRef sql.NullString
	NavOrder     sql.NullInt64
	NavTitle     sql.NullString
	UpdatedAt    time.Time
}

// UpdatePageNavigation updates only the navigation placement fields of
// a page, independently of its content.
func (q *Queries) UpdatePageNavigation(ctx context.Context, arg UpdatePageNavigationParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE pages
		SET placement = ?, parent_nav_ref = ?, nav_order = ?, nav_title = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+pageColumns,
		arg.Placement, arg.ParentNavRef, arg.NavOrder, arg.NavTitle,
		arg.UpdatedAt, arg.ID,
	)
	return scanPage(row)
}

// DeletePage removes a page.
func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	return err
}
