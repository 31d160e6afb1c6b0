// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
)

// Health reports service liveness and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Error("health check database ping", "category", "system", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "database unreachable", nil)
		return
	}
	WriteSuccess(w, map[string]string{"status": "ok"}, nil)
}
