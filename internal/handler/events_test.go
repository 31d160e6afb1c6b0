// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func createTestEvent(t *testing.T, r http.Handler, name string) eventResponse {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"event_type":"spl","start_date":"2026-10-01","status":"published"}`, name)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/events", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create %q: status = %d, body %s", name, rec.Code, rec.Body.String())
	}
	var resp struct {
		Data eventResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Data
}

func TestUpdateEventRejectsTakenSlug(t *testing.T) {
	f := setupHandler(t)

	r := chi.NewRouter()
	r.Post("/api/admin/events", f.handler.CreateEvent)
	r.Put("/api/admin/events/{id}", f.handler.UpdateEvent)

	first := createTestEvent(t, r, "Spring Throwdown")
	second := createTestEvent(t, r, "Summer Slam")

	// Renaming the second event onto the first one's slug must fail
	// validation, not hit the database constraint.
	body := fmt.Sprintf(`{"name":"Summer Slam","slug":%q,"event_type":"spl","start_date":"2026-10-01","status":"published"}`,
		first.Slug)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/admin/events/%d", second.ID), strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusUnprocessableEntity, rec.Body.String())
	}
	var resp struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Details["slug"] != "slug already in use" {
		t.Errorf("details = %v, want a slug conflict", resp.Error.Details)
	}
}

func TestUpdateEventKeepsOwnSlug(t *testing.T) {
	f := setupHandler(t)

	r := chi.NewRouter()
	r.Post("/api/admin/events", f.handler.CreateEvent)
	r.Put("/api/admin/events/{id}", f.handler.UpdateEvent)

	event := createTestEvent(t, r, "Autumn Finals")

	// An update that keeps the slug is not a conflict with itself.
	body := fmt.Sprintf(`{"name":"Autumn Finals","slug":%q,"event_type":"spl","start_date":"2026-11-15","status":"published"}`,
		event.Slug)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/admin/events/%d", event.ID), strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Data eventResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.StartDate != "2026-11-15" {
		t.Errorf("start_date = %q, want 2026-11-15", resp.Data.StartDate)
	}
}
