// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/soundoffhq/soundoff-go/internal/cache"
	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/util"
)

// htmlSanitizer strips script tags, event handlers and other unsafe
// markup from rendered page bodies before they are stored.
var htmlSanitizer = bluemonday.UGCPolicy()

// Page write errors.
var (
	ErrSlugTaken         = errors.New("page slug already in use")
	ErrInvalidPageStatus = errors.New("unknown page status")
)

// RenderMarkdown converts a markdown body to sanitized HTML.
func RenderMarkdown(body string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}

// ContentService manages content pages. Rendering happens at write
// time; reads serve the stored HTML, via the page cache when one is
// configured.
type ContentService struct {
	queries   *store.Queries
	pageCache *cache.PageCache
	navCache  *cache.NavCache
}

// NewContentService creates a new ContentService. Either cache may be nil.
func NewContentService(db *sql.DB, pageCache *cache.PageCache, navCache *cache.NavCache) *ContentService {
	return &ContentService{
		queries:   store.New(db),
		pageCache: pageCache,
		navCache:  navCache,
	}
}

// CreatePageParams holds the caller-facing fields for creating a page.
// An empty slug is derived from the title.
type CreatePageParams struct {
	Title    string
	Slug     string
	Body     string
	Status   string
	AuthorID int64
}

// CreatePage renders, validates and inserts a content page.
func (s *ContentService) CreatePage(ctx context.Context, arg CreatePageParams) (store.Page, error) {
	if strings.TrimSpace(arg.Title) == "" {
		return store.Page{}, ErrTitleRequired
	}
	if !model.IsValidPageStatus(arg.Status) {
		return store.Page{}, ErrInvalidPageStatus
	}

	slug := arg.Slug
	if slug == "" {
		slug = util.Slugify(arg.Title)
	}
	if !util.IsValidSlug(slug) {
		return store.Page{}, fmt.Errorf("invalid slug %q", slug)
	}
	taken, err := s.queries.PageSlugExists(ctx, slug)
	if err != nil {
		return store.Page{}, fmt.Errorf("checking slug: %w", err)
	}
	if taken {
		return store.Page{}, ErrSlugTaken
	}

	html, err := RenderMarkdown(arg.Body)
	if err != nil {
		return store.Page{}, err
	}

	now := time.Now()
	var publishedAt sql.NullTime
	if arg.Status == model.PageStatusPublished {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}

	page, err := s.queries.CreatePage(ctx, store.CreatePageParams{
		Title:       strings.TrimSpace(arg.Title),
		Slug:        slug,
		Body:        arg.Body,
		BodyHTML:    html,
		Status:      arg.Status,
		AuthorID:    arg.AuthorID,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return store.Page{}, fmt.Errorf("creating page: %w", err)
	}

	s.dropFromCaches(ctx, page.Slug)
	return page, nil
}

// UpdatePageParams holds the caller-facing fields for updating a page.
type UpdatePageParams struct {
	ID     int64
	Title  string
	Slug   string
	Body   string
	Status string
}

// UpdatePage re-renders and updates a page's content. Navigation
// placement is managed separately through NavService.AssignPlacement.
func (s *ContentService) UpdatePage(ctx context.Context, arg UpdatePageParams) (store.Page, error) {
	current, err := s.queries.GetPageByID(ctx, arg.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Page{}, ErrPageNotFound
		}
		return store.Page{}, fmt.Errorf("loading page: %w", err)
	}

	if strings.TrimSpace(arg.Title) == "" {
		return store.Page{}, ErrTitleRequired
	}
	if !model.IsValidPageStatus(arg.Status) {
		return store.Page{}, ErrInvalidPageStatus
	}

	slug := arg.Slug
	if slug == "" {
		slug = util.Slugify(arg.Title)
	}
	if !util.IsValidSlug(slug) {
		return store.Page{}, fmt.Errorf("invalid slug %q", slug)
	}
	taken, err := s.queries.PageSlugExistsExcluding(ctx, store.PageSlugExistsExcludingParams{
		Slug: slug,
		ID:   arg.ID,
	})
	if err != nil {
		return store.Page{}, fmt.Errorf("checking slug: %w", err)
	}
	if taken {
		return store.Page{}, ErrSlugTaken
	}

	html, err := RenderMarkdown(arg.Body)
	if err != nil {
		return store.Page{}, err
	}

	publishedAt := current.PublishedAt
	if arg.Status == model.PageStatusPublished && !publishedAt.Valid {
		publishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	page, err := s.queries.UpdatePage(ctx, store.UpdatePageParams{
		ID:          arg.ID,
		Title:       strings.TrimSpace(arg.Title),
		Slug:        slug,
		Body:        arg.Body,
		BodyHTML:    html,
		Status:      arg.Status,
		PublishedAt: publishedAt,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return store.Page{}, fmt.Errorf("updating page: %w", err)
	}

	// Drop both slugs in case the update renamed the page.
	s.dropFromCaches(ctx, current.Slug)
	if page.Slug != current.Slug {
		s.dropFromCaches(ctx, page.Slug)
	}
	return page, nil
}

// DeletePage removes a page. A menu item linked to it keeps its own
// row; the link simply stops resolving.
func (s *ContentService) DeletePage(ctx context.Context, id int64) error {
	page, err := s.queries.GetPageByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPageNotFound
		}
		return fmt.Errorf("loading page: %w", err)
	}
	if err := s.queries.DeletePage(ctx, id); err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	s.dropFromCaches(ctx, page.Slug)
	return nil
}

// PublishedPage returns a published page by slug. Response caching
// happens at the handler; this always reads the store.
func (s *ContentService) PublishedPage(ctx context.Context, slug string) (store.Page, error) {
	page, err := s.queries.GetPageBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Page{}, ErrPageNotFound
		}
		return store.Page{}, fmt.Errorf("loading page: %w", err)
	}
	if page.Status != model.PageStatusPublished {
		return store.Page{}, ErrPageNotFound
	}
	return page, nil
}

func (s *ContentService) dropFromCaches(ctx context.Context, slug string) {
	if s.pageCache != nil {
		s.pageCache.Invalidate(ctx, slug)
	}
	if s.navCache != nil {
		s.navCache.Invalidate()
	}
}
