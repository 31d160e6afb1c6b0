// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
)

// adRequest is the body for creating or updating an ad campaign.
type adRequest struct {
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	TargetURL string `json:"target_url"`
	Zone      string `json:"zone"`
	StartsAt  string `json:"starts_at"`
	EndsAt    string `json:"ends_at"`
	IsActive  bool   `json:"is_active"`
}

// adResponse is the admin shape of an ad campaign.
type adResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	TargetURL   string `json:"target_url"`
	Zone        string `json:"zone"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	IsActive    bool   `json:"is_active"`
	Impressions int64  `json:"impressions"`
	Clicks      int64  `json:"clicks"`
}

func toAdResponse(a store.AdCampaign) adResponse {
	return adResponse{
		ID:          a.ID,
		Name:        a.Name,
		ImageURL:    a.ImageURL,
		TargetURL:   a.TargetURL,
		Zone:        a.Zone,
		StartsAt:    a.StartsAt.UTC().Format("2006-01-02"),
		EndsAt:      a.EndsAt.UTC().Format("2006-01-02"),
		IsActive:    a.IsActive,
		Impressions: a.Impressions,
		Clicks:      a.Clicks,
	}
}

func (req adRequest) validate() (time.Time, time.Time, map[string]string) {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "name is required"
	}
	if !model.IsValidAdZone(req.Zone) {
		fieldErrors["zone"] = "unknown ad zone"
	}
	startsAt, err := time.Parse("2006-01-02", req.StartsAt)
	if err != nil {
		fieldErrors["starts_at"] = "starts_at must be YYYY-MM-DD"
	}
	endsAt, err := time.Parse("2006-01-02", req.EndsAt)
	if err != nil {
		fieldErrors["ends_at"] = "ends_at must be YYYY-MM-DD"
	} else if !startsAt.IsZero() && endsAt.Before(startsAt) {
		fieldErrors["ends_at"] = "ends_at is before starts_at"
	}
	if len(fieldErrors) > 0 {
		return time.Time{}, time.Time{}, fieldErrors
	}
	return startsAt, endsAt, nil
}

// ListAds returns all ad campaigns for the admin.
func (h *Handler) ListAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.queries.ListAdCampaigns(r.Context())
	if err != nil {
		h.logger.Error("listing ads", "category", "system", "error", err)
		WriteInternalError(w, "failed to list ad campaigns")
		return
	}
	resp := make([]adResponse, 0, len(ads))
	for _, a := range ads {
		resp = append(resp, toAdResponse(a))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// CreateAd creates an ad campaign.
func (h *Handler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var req adRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	startsAt, endsAt, fieldErrors := req.validate()
	if fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	now := time.Now()
	ad, err := h.queries.CreateAdCampaign(r.Context(), store.CreateAdCampaignParams{
		Name:      strings.TrimSpace(req.Name),
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Zone:      req.Zone,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		IsActive:  req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		h.logger.Error("creating ad", "category", "system", "error", err)
		WriteInternalError(w, "failed to create ad campaign")
		return
	}
	WriteCreated(w, toAdResponse(ad))
}

// UpdateAd updates an ad campaign.
func (h *Handler) UpdateAd(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid ad id", nil)
		return
	}
	var req adRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	startsAt, endsAt, fieldErrors := req.validate()
	if fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ad, err := h.queries.UpdateAdCampaign(r.Context(), store.UpdateAdCampaignParams{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Zone:      req.Zone,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		IsActive:  req.IsActive,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "ad campaign not found")
			return
		}
		h.logger.Error("updating ad", "category", "system", "error", err)
		WriteInternalError(w, "failed to update ad campaign")
		return
	}
	WriteSuccess(w, toAdResponse(ad), nil)
}

// DeleteAd removes an ad campaign.
func (h *Handler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid ad id", nil)
		return
	}
	if err := h.queries.DeleteAdCampaign(r.Context(), id); err != nil {
		h.logger.Error("deleting ad", "category", "system", "error", err)
		WriteInternalError(w, "failed to delete ad campaign")
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// ServeAd picks the least-served active ad for a zone and counts the
// impression. Zones with no eligible campaign return 204.
func (h *Handler) ServeAd(w http.ResponseWriter, r *http.Request) {
	zone := chi.URLParam(r, "zone")
	if !model.IsValidAdZone(zone) {
		WriteBadRequest(w, "unknown ad zone", nil)
		return
	}

	ad, err := h.queries.PickAdForZone(r.Context(), store.PickAdForZoneParams{
		Zone: zone,
		Now:  time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.logger.Error("picking ad", "category", "system", "error", err)
		WriteInternalError(w, "failed to serve ad")
		return
	}

	if err := h.queries.IncrementAdImpressions(r.Context(), ad.ID); err != nil {
		h.logger.Error("counting impression", "category", "system", "error", err)
	}
	WriteSuccess(w, toAdResponse(ad), nil)
}

// AdClick counts a click and returns the campaign target URL.
func (h *Handler) AdClick(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid ad id", nil)
		return
	}
	ad, err := h.queries.GetAdCampaignByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "ad campaign not found")
			return
		}
		WriteInternalError(w, "failed to load ad campaign")
		return
	}
	if err := h.queries.IncrementAdClicks(r.Context(), id); err != nil {
		h.logger.Error("counting click", "category", "system", "error", err)
	}
	WriteSuccess(w, map[string]string{"target_url": ad.TargetURL}, nil)
}
