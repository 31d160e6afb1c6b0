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
	"github.com/soundoffhq/soundoff-go/internal/util"
)

// eventRequest is the body for creating or updating an event.
type eventRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	EventType   string `json:"event_type"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	Status      string `json:"status"`
}

// eventResponse is the API shape of an event.
type eventResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	EventType   string `json:"event_type"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"`
	Status      string `json:"status"`
}

func toEventResponse(e store.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		EventType:   e.EventType,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate.UTC().Format("2006-01-02"),
		Status:      e.Status,
	}
}

func (req eventRequest) validate() (time.Time, map[string]string) {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "name is required"
	}
	if !model.IsValidEventType(req.EventType) {
		fieldErrors["event_type"] = "unknown event type"
	}
	if !model.IsValidEventStatus(req.Status) {
		fieldErrors["status"] = "unknown event status"
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		fieldErrors["start_date"] = "start_date must be YYYY-MM-DD"
	}
	if len(fieldErrors) > 0 {
		return time.Time{}, fieldErrors
	}
	return startDate, nil
}

// ListEvents returns events, optionally filtered by status and type.
// Unauthenticated callers only see published and completed events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	eventType := r.URL.Query().Get("type")

	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		Status:    status,
		EventType: eventType,
		Limit:     200,
	})
	if err != nil {
		h.logger.Error("listing events", "category", "event", "error", err)
		WriteInternalError(w, "failed to list events")
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEventResponse(e))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// PublicEvents returns upcoming published events for the site.
func (h *Handler) PublicEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		Status:    model.EventStatusPublished,
		EventType: r.URL.Query().Get("type"),
		Limit:     100,
	})
	if err != nil {
		h.logger.Error("listing public events", "category", "event", "error", err)
		WriteInternalError(w, "failed to list events")
		return
	}
	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEventResponse(e))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetEvent returns one event by slug.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.queries.GetEventBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "event not found")
			return
		}
		h.logger.Error("loading event", "category", "event", "error", err)
		WriteInternalError(w, "failed to load event")
		return
	}
	WriteSuccess(w, toEventResponse(event), nil)
}

// CreateEvent creates a competition event.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	startDate, fieldErrors := req.validate()
	if fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}
	taken, err := h.queries.EventSlugExists(r.Context(), slug)
	if err != nil {
		WriteInternalError(w, "failed to check slug")
		return
	}
	if taken {
		WriteValidationError(w, map[string]string{"slug": "slug already in use"})
		return
	}

	now := time.Now()
	event, err := h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		EventType:   req.EventType,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   startDate,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		h.logger.Error("creating event", "category", "event", "error", err)
		WriteInternalError(w, "failed to create event")
		return
	}
	h.logger.Info("event created", "category", "event", "id", event.ID, "slug", event.Slug)
	WriteCreated(w, toEventResponse(event))
}

// UpdateEvent updates a competition event.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid event id", nil)
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	startDate, fieldErrors := req.validate()
	if fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	current, err := h.queries.GetEventByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "event not found")
			return
		}
		WriteInternalError(w, "failed to load event")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = current.Slug
	}
	taken, err := h.queries.EventSlugExistsExcluding(r.Context(), store.EventSlugExistsExcludingParams{
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

	event, err := h.queries.UpdateEvent(r.Context(), store.UpdateEventParams{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		EventType:   req.EventType,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   startDate,
		Status:      req.Status,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		h.logger.Error("updating event", "category", "event", "error", err)
		WriteInternalError(w, "failed to update event")
		return
	}
	WriteSuccess(w, toEventResponse(event), nil)
}

// DeleteEvent removes an event and, via the schema, its registrations.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid event id", nil)
		return
	}
	if err := h.queries.DeleteEvent(r.Context(), id); err != nil {
		h.logger.Error("deleting event", "category", "event", "error", err)
		WriteInternalError(w, "failed to delete event")
		return
	}
	h.logger.Info("event deleted", "category", "event", "id", id)
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}

// EventStats returns per-status registration counts for an event.
func (h *Handler) EventStats(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid event id", nil)
		return
	}
	counts, err := h.queries.CountRegistrationsByStatus(r.Context(), id)
	if err != nil {
		h.logger.Error("counting registrations", "category", "event", "error", err)
		WriteInternalError(w, "failed to load event stats")
		return
	}

	stats := make(map[string]int64, len(counts))
	for _, c := range counts {
		stats[c.Status] = c.Count
	}
	WriteSuccess(w, stats, nil)
}
