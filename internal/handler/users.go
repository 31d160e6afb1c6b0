// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/soundoffhq/soundoff-go/internal/auth"
	"github.com/soundoffhq/soundoff-go/internal/middleware"
	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
)

// userRequest is the admin body for creating or updating a user.
type userRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Classification string `json:"classification"`
	IsActive       bool   `json:"is_active"`
}

func (req userRequest) validate(requirePassword bool) map[string]string {
	fieldErrors := make(map[string]string)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		fieldErrors["email"] = "a valid email is required"
	}
	if requirePassword && len(req.Password) < 8 {
		fieldErrors["password"] = "password must be at least 8 characters"
	}
	if !model.IsValidRole(req.Role) {
		fieldErrors["role"] = "unknown role"
	}
	// Classification stays empty for plain accounts; custom plans can
	// carry classifications beyond the built-in set, so any non-blank
	// value is accepted.
	if req.Classification != strings.TrimSpace(req.Classification) {
		fieldErrors["classification"] = "classification must not have surrounding whitespace"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ListUsers returns all user accounts for the admin.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("listing users", "category", "user", "error", err)
		WriteInternalError(w, "failed to list users")
		return
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{
			ID:             u.ID,
			Email:          u.Email,
			Name:           u.Name,
			Role:           u.Role,
			Classification: u.Classification,
		})
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// CreateUser creates a user account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(true); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := h.queries.UserEmailExists(r.Context(), email)
	if err != nil {
		WriteInternalError(w, "failed to check email")
		return
	}
	if exists {
		WriteValidationError(w, map[string]string{"email": "email already registered"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hashing password", "error", err)
		WriteInternalError(w, "failed to create user")
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:          email,
		PasswordHash:   passwordHash,
		Name:           strings.TrimSpace(req.Name),
		Role:           req.Role,
		Classification: req.Classification,
		IsActive:       req.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		h.logger.Error("creating user", "category", "user", "error", err)
		WriteInternalError(w, "failed to create user")
		return
	}
	h.logger.Info("user created", "category", "user", "id", user.ID, "email", user.Email)
	WriteCreated(w, userResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           user.Role,
		Classification: user.Classification,
	})
}

// UpdateUser updates a user account. Password changes go through the
// dedicated endpoint.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid user id", nil)
		return
	}
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(false); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:             id,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Name:           strings.TrimSpace(req.Name),
		Role:           req.Role,
		Classification: req.Classification,
		IsActive:       req.IsActive,
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "user not found")
			return
		}
		h.logger.Error("updating user", "category", "user", "error", err)
		WriteInternalError(w, "failed to update user")
		return
	}
	WriteSuccess(w, userResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           user.Role,
		Classification: user.Classification,
	}, nil)
}

// passwordRequest is the body for changing a user's password.
type passwordRequest struct {
	Password string `json:"password"`
}

// UpdateUserPassword sets a new password for a user.
func (h *Handler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid user id", nil)
		return
	}
	var req passwordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if len(req.Password) < 8 {
		WriteValidationError(w, map[string]string{"password": "password must be at least 8 characters"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hashing password", "error", err)
		WriteInternalError(w, "failed to update password")
		return
	}
	if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
		ID:           id,
		PasswordHash: passwordHash,
		UpdatedAt:    time.Now(),
	}); err != nil {
		h.logger.Error("updating password", "category", "user", "error", err)
		WriteInternalError(w, "failed to update password")
		return
	}
	h.logger.Info("password changed", "category", "auth", "user_id", id)
	WriteSuccess(w, map[string]string{"status": "password_updated"}, nil)
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid user id", nil)
		return
	}
	if current := middleware.GetUser(r); current != nil && current.ID == id {
		WriteValidationError(w, map[string]string{"id": "cannot delete your own account"})
		return
	}
	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		h.logger.Error("deleting user", "category", "user", "error", err)
		WriteInternalError(w, "failed to delete user")
		return
	}
	h.logger.Info("user deleted", "category", "user", "id", id)
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
