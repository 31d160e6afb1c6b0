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
)

// loginRequest is the POST /api/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public shape of a user account.
type userResponse struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Classification string `json:"classification"`
}

// Login authenticates a user and starts a session. Failed attempts
// feed the login protection tracker; a locked account is refused even
// with the right password.
func (h *Handler) Login(lp *middleware.LoginProtection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteBadRequest(w, "invalid request body", nil)
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" {
			WriteValidationError(w, map[string]string{"email": "email and password are required"})
			return
		}

		if locked, remaining := lp.IsAccountLocked(email); locked {
			h.logger.Warn("login attempt on locked account", "email", email)
			WriteError(w, http.StatusTooManyRequests, "account_locked",
				"account temporarily locked, try again later",
				map[string]string{"retry_after": remaining.Round(time.Second).String()})
			return
		}

		user, err := h.queries.GetUserByEmail(r.Context(), email)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				h.logger.Error("loading user for login", "error", err)
				WriteInternalError(w, "login failed")
				return
			}
			// Record the miss so unknown accounts cost the same as
			// wrong passwords.
			lp.RecordFailedAttempt(email)
			WriteUnauthorized(w, "invalid email or password")
			return
		}

		ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
		if err != nil {
			h.logger.Error("checking password", "error", err)
			WriteInternalError(w, "login failed")
			return
		}
		if !ok || !user.IsActive {
			lp.RecordFailedAttempt(email)
			h.logger.Warn("failed login", "category", "auth", "email", email)
			WriteUnauthorized(w, "invalid email or password")
			return
		}

		lp.RecordSuccessfulLogin(email)

		if err := h.sessions.RenewToken(r.Context()); err != nil {
			h.logger.Error("renewing session token", "error", err)
			WriteInternalError(w, "login failed")
			return
		}
		h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

		if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, time.Now()); err != nil {
			h.logger.Error("updating last login", "error", err)
		}
		h.logger.Info("user logged in", "category", "auth", "user_id", user.ID)

		WriteSuccess(w, userResponse{
			ID:             user.ID,
			Email:          user.Email,
			Name:           user.Name,
			Role:           user.Role,
			Classification: user.Classification,
		}, nil)
	}
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.logger.Error("destroying session", "error", err)
		WriteInternalError(w, "logout failed")
		return
	}
	WriteSuccess(w, map[string]string{"status": "logged_out"}, nil)
}

// Me returns the authenticated user's account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "authentication required")
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
