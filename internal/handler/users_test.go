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

func TestCreateUserAllowsEmptyClassification(t *testing.T) {
	f := setupHandler(t)

	r := chi.NewRouter()
	r.Post("/api/admin/users", f.handler.CreateUser)

	body := `{"email":"member@example.com","password":"longenough","name":"Plain Member","role":"member","classification":"","is_active":true}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp struct {
		Data userResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Classification != "" {
		t.Errorf("classification = %q, want empty", resp.Data.Classification)
	}
	if resp.Data.Role != "member" {
		t.Errorf("role = %q, want member", resp.Data.Role)
	}
}

func TestCreateUserAcceptsCustomClassification(t *testing.T) {
	f := setupHandler(t)

	r := chi.NewRouter()
	r.Post("/api/admin/users", f.handler.CreateUser)

	body := `{"email":"vendor@example.com","password":"longenough","name":"Vendor","role":"member","classification":"vendor","is_active":true}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestUpdateUserKeepsAdminWithoutClassification(t *testing.T) {
	f := setupHandler(t)

	r := chi.NewRouter()
	r.Put("/api/admin/users/{id}", f.handler.UpdateUser)

	// The seeded admin carries no classification; updating it must not
	// trip validation.
	body := `{"email":"admin@example.com","name":"Renamed Admin","role":"admin","classification":"","is_active":true}`
	url := fmt.Sprintf("/api/admin/users/%d", f.adminID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, url, strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Data userResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Name != "Renamed Admin" {
		t.Errorf("name = %q, want Renamed Admin", resp.Data.Name)
	}
}
