// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/soundoffhq/soundoff-go/internal/middleware"
	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/service"
	"github.com/soundoffhq/soundoff-go/internal/store"
)

// registerRequest is the body for registering for an event.
type registerRequest struct {
	EventID          int64  `json:"event_id"`
	Vehicle          string `json:"vehicle"`
	CompetitionClass string `json:"competition_class"`
}

// registrationResponse is the API shape of a registration.
type registrationResponse struct {
	ID                 int64  `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	EventID            int64  `json:"event_id"`
	UserID             int64  `json:"user_id"`
	Vehicle            string `json:"vehicle,omitempty"`
	CompetitionClass   string `json:"competition_class,omitempty"`
	Status             string `json:"status"`
	CheckedInAt        string `json:"checked_in_at,omitempty"`
}

func toRegistrationResponse(reg store.Registration) registrationResponse {
	resp := registrationResponse{
		ID:                 reg.ID,
		RegistrationNumber: reg.RegistrationNumber,
		EventID:            reg.EventID,
		UserID:             reg.UserID,
		Vehicle:            reg.Vehicle,
		CompetitionClass:   reg.CompetitionClass,
		Status:             reg.Status,
	}
	if reg.CheckedInAt.Valid {
		resp.CheckedInAt = reg.CheckedInAt.Time.UTC().Format("2006-01-02T15:04:05Z")
	}
	return resp
}

func writeRegistrationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		WriteNotFound(w, "event not found")
	case errors.Is(err, service.ErrRegistrationMissing):
		WriteNotFound(w, "registration not found")
	case errors.Is(err, service.ErrEventNotOpen):
		WriteValidationError(w, map[string]string{"event_id": "event is not open for registration"})
	case errors.Is(err, service.ErrAlreadyRegistered):
		WriteValidationError(w, map[string]string{"event_id": "already registered for this event"})
	case errors.Is(err, service.ErrNotConfirmed):
		WriteValidationError(w, map[string]string{"status": "only confirmed registrations can check in"})
	default:
		WriteInternalError(w, "registration operation failed")
	}
}

// Register signs the current user up for an event.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "authentication required")
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}

	reg, err := h.registrations.Register(r.Context(), service.RegisterParams{
		EventID:          req.EventID,
		UserID:           user.ID,
		Vehicle:          req.Vehicle,
		CompetitionClass: req.CompetitionClass,
	})
	if err != nil {
		writeRegistrationError(w, err)
		return
	}
	h.logger.Info("registration created", "category", "event",
		"registration", reg.RegistrationNumber, "event_id", reg.EventID, "user_id", reg.UserID)
	WriteCreated(w, toRegistrationResponse(reg))
}

// MyRegistrations lists the current user's registrations.
func (h *Handler) MyRegistrations(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "authentication required")
		return
	}
	regs, err := h.queries.ListRegistrations(r.Context(), store.ListRegistrationsParams{
		UserID: user.ID,
	})
	if err != nil {
		h.logger.Error("listing registrations", "category", "event", "error", err)
		WriteInternalError(w, "failed to list registrations")
		return
	}
	resp := make([]registrationResponse, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, toRegistrationResponse(reg))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// ListRegistrations lists registrations for the admin, with filters.
func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	eventID, _ := strconv.ParseInt(q.Get("event_id"), 10, 64)
	userID, _ := strconv.ParseInt(q.Get("user_id"), 10, 64)
	status := q.Get("status")
	if status != "" && !model.IsValidRegistrationStatus(status) {
		WriteValidationError(w, map[string]string{"status": "unknown registration status"})
		return
	}

	regs, err := h.queries.ListRegistrations(r.Context(), store.ListRegistrationsParams{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	})
	if err != nil {
		h.logger.Error("listing registrations", "category", "event", "error", err)
		WriteInternalError(w, "failed to list registrations")
		return
	}
	resp := make([]registrationResponse, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, toRegistrationResponse(reg))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// ConfirmRegistration marks a registration as paid.
func (h *Handler) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	h.registrationAction(w, r, h.registrations.Confirm, "confirmed")
}

// CancelRegistration cancels a registration.
func (h *Handler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	h.registrationAction(w, r, h.registrations.Cancel, "cancelled")
}

// CheckInRegistration checks a confirmed registration in at the gate.
func (h *Handler) CheckInRegistration(w http.ResponseWriter, r *http.Request) {
	h.registrationAction(w, r, h.registrations.CheckIn, "checked_in")
}

func (h *Handler) registrationAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id int64) error, status string) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid registration id", nil)
		return
	}
	if err := action(r.Context(), id); err != nil {
		writeRegistrationError(w, err)
		return
	}
	h.logger.Info("registration status changed", "category", "event", "id", id, "status", status)
	WriteSuccess(w, map[string]string{"status": status}, nil)
}
