// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestCreatePlanAcceptsCustomClassification(t *testing.T) {
	f := setupHandler(t)

	r := chi.NewRouter()
	r.Post("/api/admin/plans", f.handler.CreatePlan)

	body := `{"name":"Spectator Pass","classification":"spectator","price_cents":1500,"billing_period":"yearly","features":["event entry"],"is_active":true,"sort_order":10}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/plans", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp struct {
		Data planResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Classification != "spectator" {
		t.Errorf("classification = %q, want spectator", resp.Data.Classification)
	}
	if resp.Data.Slug != "spectator-pass" {
		t.Errorf("slug = %q, want spectator-pass", resp.Data.Slug)
	}
}

func TestCreatePlanRequiresClassification(t *testing.T) {
	f := setupHandler(t)

	r := chi.NewRouter()
	r.Post("/api/admin/plans", f.handler.CreatePlan)

	body := `{"name":"Nameless Tier","classification":"","price_cents":0,"billing_period":"yearly","features":[],"is_active":true,"sort_order":0}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/plans", strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp.Error.Details["classification"]; !ok {
		t.Errorf("details = %v, want a classification error", resp.Error.Details)
	}
}
