// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/util"
)

// planRequest is the body for creating or updating a membership plan.
type planRequest struct {
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Classification string   `json:"classification"`
	PriceCents     int64    `json:"price_cents"`
	BillingPeriod  string   `json:"billing_period"`
	Features       []string `json:"features"`
	IsActive       bool     `json:"is_active"`
	SortOrder      int64    `json:"sort_order"`
}

// planResponse is the API shape of a membership plan.
type planResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Classification string   `json:"classification"`
	PriceCents     int64    `json:"price_cents"`
	BillingPeriod  string   `json:"billing_period"`
	Features       []string `json:"features"`
	IsActive       bool     `json:"is_active"`
	SortOrder      int64    `json:"sort_order"`
}

func toPlanResponse(p store.MembershipPlan) planResponse {
	return planResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Classification: p.Classification,
		PriceCents:     p.PriceCents,
		BillingPeriod:  p.BillingPeriod,
		Features:       model.ParseFeatures(p.Features),
		IsActive:       p.IsActive,
		SortOrder:      p.SortOrder,
	}
}

func (req planRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "name is required"
	}
	// Plans introduce classifications at runtime, so any non-blank
	// value is a valid classification.
	if strings.TrimSpace(req.Classification) == "" {
		fieldErrors["classification"] = "classification is required"
	}
	if !model.IsValidBillingPeriod(req.BillingPeriod) {
		fieldErrors["billing_period"] = "unknown billing period"
	}
	if req.PriceCents < 0 {
		fieldErrors["price_cents"] = "price cannot be negative"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// PublicPlans returns active plans for the pricing page.
func (h *Handler) PublicPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.queries.ListActivePlans(r.Context())
	if err != nil {
		h.logger.Error("listing plans", "category", "user", "error", err)
		WriteInternalError(w, "failed to list plans")
		return
	}
	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, toPlanResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// ListPlans returns all plans for the admin, including inactive ones.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.queries.ListPlans(r.Context())
	if err != nil {
		h.logger.Error("listing plans", "category", "user", "error", err)
		WriteInternalError(w, "failed to list plans")
		return
	}
	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, toPlanResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// CreatePlan creates a membership plan.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}
	taken, err := h.queries.PlanSlugExists(r.Context(), slug)
	if err != nil {
		WriteInternalError(w, "failed to check slug")
		return
	}
	if taken {
		WriteValidationError(w, map[string]string{"slug": "slug already in use"})
		return
	}

	now := time.Now()
	plan, err := h.queries.CreatePlan(r.Context(), store.CreatePlanParams{
		Name:           strings.TrimSpace(req.Name),
		Slug:           slug,
		Classification: req.Classification,
		PriceCents:     req.PriceCents,
		BillingPeriod:  req.BillingPeriod,
		Features:       model.MarshalFeatures(req.Features),
		IsActive:       req.IsActive,
		SortOrder:      req.SortOrder,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		h.logger.Error("creating plan", "category", "user", "error", err)
		WriteInternalError(w, "failed to create plan")
		return
	}
	h.logger.Info("plan created", "category", "user", "id", plan.ID, "slug", plan.Slug)
	WriteCreated(w, toPlanResponse(plan))
}

// UpdatePlan updates a membership plan.
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid plan id", nil)
		return
	}
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	current, err := h.queries.GetPlanByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "plan not found")
			return
		}
		WriteInternalError(w, "failed to load plan")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = current.Slug
	}
	taken, err := h.queries.PlanSlugExistsExcluding(r.Context(), store.PlanSlugExistsExcludingParams{
		Slug: slug,
		ID:   id,
	})
	if err != nil {
		WriteInternalError(w, "failed to check slug")
		return
	}
	if taken {
		WriteValidationError(w, map[string]string{"slug": "slug already in use"})
		return
	}

	plan, err := h.queries.UpdatePlan(r.Context(), store.UpdatePlanParams{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Slug:           slug,
		Classification: req.Classification,
		PriceCents:     req.PriceCents,
		BillingPeriod:  req.BillingPeriod,
		Features:       model.MarshalFeatures(req.Features),
		IsActive:       req.IsActive,
		SortOrder:      req.SortOrder,
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		h.logger.Error("updating plan", "category", "user", "error", err)
		WriteInternalError(w, "failed to update plan")
		return
	}
	WriteSuccess(w, toPlanResponse(plan), nil)
}

// DeletePlan removes a membership plan.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid plan id", nil)
		return
	}
	if err := h.queries.DeletePlan(r.Context(), id); err != nil {
		h.logger.Error("deleting plan", "category", "user", "error", err)
		WriteInternalError(w, "failed to delete plan")
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
