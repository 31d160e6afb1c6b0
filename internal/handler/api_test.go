// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "Soundoff"}, &Meta{Total: 1})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp struct {
		Data map[string]string `json:"data"`
		Meta Meta              `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data["name"] != "Soundoff" {
		t.Errorf("data = %v", resp.Data)
	}
	if resp.Meta.Total != 1 {
		t.Errorf("meta.total = %d, want 1", resp.Meta.Total)
	}
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationError(rec, map[string]string{"title": "title is required"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Code != "validation_error" {
		t.Errorf("code = %q", resp.Error.Code)
	}
	if resp.Error.Details["title"] != "title is required" {
		t.Errorf("details = %v", resp.Error.Details)
	}
}

func TestWriteNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNotFound(rec, "page not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error.Code != "not_found" || resp.Error.Message != "page not found" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"ok"}`))
	if err := decodeJSON(r, &dst); err != nil {
		t.Fatalf("decodeJSON: %v", err)
	}
	if dst.Title != "ok" {
		t.Errorf("Title = %q", dst.Title)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"ok","bogus":1}`))
	if err := decodeJSON(r, &dst); err == nil {
		t.Error("expected error for unknown field")
	}
}
