// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soundoffhq/soundoff-go/internal/middleware"
	"github.com/soundoffhq/soundoff-go/internal/service"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/util"
)

// pageRequest is the body for creating or updating a page.
type pageRequest struct {
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Body   string `json:"body"`
	Status string `json:"status"`
}

// placementRequest is the body for assigning a page's navigation spot.
type placementRequest struct {
	Placement    string  `json:"placement"`
	ParentNavRef *string `json:"parent_nav_ref"`
	NavOrder     *int64  `json:"nav_order"`
	NavTitle     *string `json:"nav_title"`
}

// pageResponse is the admin-facing shape of a page.
type pageResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Body         string  `json:"body,omitempty"`
	BodyHTML     string  `json:"body_html,omitempty"`
	Status       string  `json:"status"`
	Placement    string  `json:"placement"`
	ParentNavRef *string `json:"parent_nav_ref,omitempty"`
	NavOrder     *int64  `json:"nav_order,omitempty"`
	NavTitle     *string `json:"nav_title,omitempty"`
	PublishedAt  string  `json:"published_at,omitempty"`
}

func toPageResponse(p store.Page) pageResponse {
	resp := pageResponse{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Body:      p.Body,
		BodyHTML:  p.BodyHTML,
		Status:    p.Status,
		Placement: p.Placement,
	}
	resp.ParentNavRef = util.NullStringToPtr(p.ParentNavRef)
	resp.NavOrder = util.NullInt64ToPtr(p.NavOrder)
	resp.NavTitle = util.NullStringToPtr(p.NavTitle)
	if p.PublishedAt.Valid {
		resp.PublishedAt = p.PublishedAt.Time.UTC().Format("2006-01-02T15:04:05Z")
	}
	return resp
}

func writePageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		WriteNotFound(w, "page not found")
	case errors.Is(err, service.ErrTitleRequired):
		WriteValidationError(w, map[string]string{"title": "title is required"})
	case errors.Is(err, service.ErrSlugTaken):
		WriteValidationError(w, map[string]string{"slug": "slug already in use"})
	case errors.Is(err, service.ErrInvalidPageStatus):
		WriteValidationError(w, map[string]string{"status": "unknown page status"})
	case errors.Is(err, service.ErrInvalidPlacement):
		WriteValidationError(w, map[string]string{"placement": "unknown navigation placement"})
	default:
		WriteInternalError(w, "page operation failed")
	}
}

// ListPages returns pages for the admin, paginated.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage := 50

	pages, err := h.queries.ListPages(r.Context(), store.ListPagesParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		h.logger.Error("listing pages", "category", "page", "error", err)
		WriteInternalError(w, "failed to list pages")
		return
	}

	resp := make([]pageResponse, 0, len(pages))
	for _, p := range pages {
		resp = append(resp, toPageResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Page: page, PerPage: perPage})
}

// CreatePage creates a content page.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "authentication required")
		return
	}

	page, err := h.content.CreatePage(r.Context(), service.CreatePageParams{
		Title:    req.Title,
		Slug:     req.Slug,
		Body:     req.Body,
		Status:   req.Status,
		AuthorID: user.ID,
	})
	if err != nil {
		writePageError(w, err)
		return
	}
	h.logger.Info("page created", "category", "page", "id", page.ID, "slug", page.Slug)
	WriteCreated(w, toPageResponse(page))
}

// UpdatePage updates a page's content fields.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid page id", nil)
		return
	}
	var req pageRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}

	page, err := h.content.UpdatePage(r.Context(), service.UpdatePageParams{
		ID:     id,
		Title:  req.Title,
		Slug:   req.Slug,
		Body:   req.Body,
		Status: req.Status,
	})
	if err != nil {
		writePageError(w, err)
		return
	}
	WriteSuccess(w, toPageResponse(page), nil)
}

// AssignPagePlacement sets where the page appears in navigation.
func (h *Handler) AssignPagePlacement(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid page id", nil)
		return
	}
	var req placementRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}

	page, err := h.nav.AssignPlacement(r.Context(), service.AssignPlacementParams{
		PageID:       id,
		Placement:    req.Placement,
		ParentNavRef: req.ParentNavRef,
		NavOrder:     req.NavOrder,
		NavTitle:     req.NavTitle,
	})
	if err != nil {
		writePageError(w, err)
		return
	}
	h.logger.Info("page placement updated", "category", "page",
		"id", page.ID, "placement", page.Placement)
	WriteSuccess(w, toPageResponse(page), nil)
}

// DeletePage removes a page.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid page id", nil)
		return
	}
	if err := h.content.DeletePage(r.Context(), id); err != nil {
		writePageError(w, err)
		return
	}
	h.logger.Info("page deleted", "category", "page", "id", id)
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// publicPageResponse is the published page shape served to visitors.
type publicPageResponse struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	BodyHTML    string `json:"body_html"`
	PublishedAt string `json:"published_at,omitempty"`
}

// PublicPage serves a published page by slug. Responses are cached by
// slug; any write to the page drops the cached copy.
func (h *Handler) PublicPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if h.pageCache != nil {
		if payload, err := h.pageCache.Get(r.Context(), slug); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			_, _ = w.Write(payload)
			return
		}
	}

	page, err := h.content.PublishedPage(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			WriteNotFound(w, "page not found")
			return
		}
		h.logger.Error("loading public page", "category", "page", "error", err)
		WriteInternalError(w, "failed to load page")
		return
	}

	var publishedAt string
	if page.PublishedAt.Valid {
		publishedAt = page.PublishedAt.Time.UTC().Format("2006-01-02T15:04:05Z")
	}
	resp := Response{Data: publicPageResponse{
		Title:       page.Title,
		Slug:        page.Slug,
		BodyHTML:    page.BodyHTML,
		PublishedAt: publishedAt,
	}}

	payload, err := json.Marshal(resp)
	if err != nil {
		WriteInternalError(w, "failed to encode page")
		return
	}
	if h.pageCache != nil {
		_ = h.pageCache.Set(r.Context(), slug, payload)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}
