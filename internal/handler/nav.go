// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/soundoffhq/soundoff-go/internal/middleware"
	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/service"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/util"
)

// menuItemRequest is the body for creating or updating a menu item.
type menuItemRequest struct {
	Title       string   `json:"title"`
	Href        *string  `json:"href"`
	Icon        *string  `json:"icon"`
	ParentID    *int64   `json:"parent_id"`
	TargetBlank bool     `json:"target_blank"`
	Public      bool     `json:"public"`
	Memberships []string `json:"memberships"`
	IsActive    bool     `json:"is_active"`
	CmsPageID   *int64   `json:"cms_page_id"`
}

func (req menuItemRequest) visibility() model.VisibilityRule {
	if req.Public {
		return model.PublicRule()
	}
	return model.RestrictedRule(req.Memberships...)
}

// menuItemResponse is the admin-facing shape of a menu item.
type menuItemResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Href        string   `json:"href,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	NavOrder    int64    `json:"nav_order"`
	ParentID    *int64   `json:"parent_id,omitempty"`
	TargetBlank bool     `json:"target_blank"`
	Public      bool     `json:"public"`
	Memberships []string `json:"memberships,omitempty"`
	IsActive    bool     `json:"is_active"`
	CmsPageID   *int64   `json:"cms_page_id,omitempty"`
}

func toMenuItemResponse(item store.MenuItem) menuItemResponse {
	rule := model.ParseVisibility(item.Visibility)
	resp := menuItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Href:        item.Href.String,
		Icon:        item.Icon.String,
		NavOrder:    item.NavOrder,
		TargetBlank: item.TargetBlank,
		Public:      rule.Public,
		Memberships: rule.MembershipTypes,
		IsActive:    item.IsActive,
	}
	resp.ParentID = util.NullInt64ToPtr(item.ParentID)
	resp.CmsPageID = util.NullInt64ToPtr(item.CmsPageID)
	return resp
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeMenuItemError maps service validation errors to API responses.
func writeMenuItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		WriteNotFound(w, "menu item not found")
	case errors.Is(err, service.ErrTitleRequired):
		WriteValidationError(w, map[string]string{"title": "title is required"})
	case errors.Is(err, service.ErrInvalidIcon):
		WriteValidationError(w, map[string]string{"icon": "unknown icon name"})
	case errors.Is(err, service.ErrParentNotFound):
		WriteValidationError(w, map[string]string{"parent_id": "parent menu item does not exist"})
	case errors.Is(err, service.ErrSelfParent):
		WriteValidationError(w, map[string]string{"parent_id": "menu item cannot be its own parent"})
	default:
		WriteInternalError(w, "menu item operation failed")
	}
}

// ListMenuItems returns all menu items flat, in display order.
func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListMenuItems(r.Context())
	if err != nil {
		h.logger.Error("listing menu items", "category", "nav", "error", err)
		WriteInternalError(w, "failed to list menu items")
		return
	}
	resp := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toMenuItemResponse(item))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetMenuItem returns one menu item.
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid menu item id", nil)
		return
	}
	item, err := h.queries.GetMenuItemByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "menu item not found")
			return
		}
		h.logger.Error("loading menu item", "category", "nav", "error", err)
		WriteInternalError(w, "failed to load menu item")
		return
	}
	WriteSuccess(w, toMenuItemResponse(item), nil)
}

// CreateMenuItem creates a menu item at the end of its sibling group.
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}

	item, err := h.nav.CreateItem(r.Context(), service.CreateItemParams{
		Title:       req.Title,
		Href:        req.Href,
		Icon:        req.Icon,
		ParentID:    req.ParentID,
		TargetBlank: req.TargetBlank,
		Visibility:  req.visibility(),
		IsActive:    req.IsActive,
		CmsPageID:   req.CmsPageID,
	})
	if err != nil {
		writeMenuItemError(w, err)
		return
	}
	h.logger.Info("menu item created", "category", "nav", "id", item.ID, "title", item.Title)
	WriteCreated(w, toMenuItemResponse(item))
}

// UpdateMenuItem updates a menu item's fields.
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid menu item id", nil)
		return
	}
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}

	item, err := h.nav.UpdateItem(r.Context(), service.UpdateItemParams{
		ID:          id,
		Title:       req.Title,
		Href:        req.Href,
		Icon:        req.Icon,
		ParentID:    req.ParentID,
		TargetBlank: req.TargetBlank,
		Visibility:  req.visibility(),
		IsActive:    req.IsActive,
		CmsPageID:   req.CmsPageID,
	})
	if err != nil {
		writeMenuItemError(w, err)
		return
	}
	WriteSuccess(w, toMenuItemResponse(item), nil)
}

// DeleteMenuItem removes a menu item, re-parenting its children.
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid menu item id", nil)
		return
	}
	if err := h.nav.DeleteItem(r.Context(), id); err != nil {
		writeMenuItemError(w, err)
		return
	}
	h.logger.Info("menu item deleted", "category", "nav", "id", id)
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// MoveMenuItemUp swaps the item with its previous sibling.
func (h *Handler) MoveMenuItemUp(w http.ResponseWriter, r *http.Request) {
	h.moveMenuItem(w, r, h.nav.MoveUp)
}

// MoveMenuItemDown swaps the item with its next sibling.
func (h *Handler) MoveMenuItemDown(w http.ResponseWriter, r *http.Request) {
	h.moveMenuItem(w, r, h.nav.MoveDown)
}

func (h *Handler) moveMenuItem(w http.ResponseWriter, r *http.Request, move func(context.Context, int64) error) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid menu item id", nil)
		return
	}
	if err := move(r.Context(), id); err != nil {
		writeMenuItemError(w, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "moved"}, nil)
}

// MenuTree returns the full admin menu tree, including hidden and
// inactive items.
func (h *Handler) MenuTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.nav.Tree(r.Context())
	if err != nil {
		h.logger.Error("building menu tree", "category", "nav", "error", err)
		WriteInternalError(w, "failed to build menu tree")
		return
	}
	WriteSuccess(w, toTreeResponse(tree), nil)
}

// menuTreeNode is the nested admin tree shape.
type menuTreeNode struct {
	menuItemResponse
	Children []menuTreeNode `json:"children,omitempty"`
}

func toTreeResponse(nodes []service.NavNode) []menuTreeNode {
	out := make([]menuTreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, menuTreeNode{
			menuItemResponse: toMenuItemResponse(n.Item),
			Children:         toTreeResponse(n.Children),
		})
	}
	return out
}

// Nav returns the rendered navigation for the current viewer.
func (h *Handler) Nav(w http.ResponseWriter, r *http.Request) {
	view, err := h.nav.ComposeNav(r.Context(), middleware.ViewerFrom(r))
	if err != nil {
		h.logger.Error("composing navigation", "category", "nav", "error", err)
		WriteInternalError(w, "failed to compose navigation")
		return
	}
	WriteSuccess(w, view, nil)
}
