// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestNullInt64FromPtr(t *testing.T) {
	if n := NullInt64FromPtr(nil); n.Valid {
		t.Error("nil pointer should produce invalid NullInt64")
	}

	v := int64(42)
	n := NullInt64FromPtr(&v)
	if !n.Valid || n.Int64 != 42 {
		t.Errorf("got {%d, %v}, want {42, true}", n.Int64, n.Valid)
	}
}

func TestNullInt64ToPtr(t *testing.T) {
	v := int64(7)
	n := NullInt64FromPtr(&v)

	ptr := NullInt64ToPtr(n)
	if ptr == nil || *ptr != 7 {
		t.Errorf("got %v, want pointer to 7", ptr)
	}
	if ptr == &v {
		t.Error("round trip should copy the value, not alias the input")
	}

	if NullInt64ToPtr(NullInt64FromPtr(nil)) != nil {
		t.Error("invalid NullInt64 should produce nil pointer")
	}
}

func TestNullStringFromValue(t *testing.T) {
	if n := NullStringFromValue(""); n.Valid {
		t.Error("empty string should produce invalid NullString")
	}
	if n := NullStringFromValue("x"); !n.Valid || n.String != "x" {
		t.Errorf("got {%q, %v}, want {\"x\", true}", n.String, n.Valid)
	}
}

func TestNullStringFromPtr(t *testing.T) {
	if n := NullStringFromPtr(nil); n.Valid {
		t.Error("nil pointer should produce invalid NullString")
	}

	empty := ""
	if n := NullStringFromPtr(&empty); n.Valid {
		t.Error("pointer to empty string should produce invalid NullString")
	}

	s := "judge"
	n := NullStringFromPtr(&s)
	if !n.Valid || n.String != "judge" {
		t.Errorf("got {%q, %v}, want {\"judge\", true}", n.String, n.Valid)
	}
}

func TestNullStringToPtr(t *testing.T) {
	s := "footer"
	ptr := NullStringToPtr(NullStringFromPtr(&s))
	if ptr == nil || *ptr != "footer" {
		t.Errorf("got %v, want pointer to \"footer\"", ptr)
	}

	if NullStringToPtr(NullStringFromPtr(nil)) != nil {
		t.Error("invalid NullString should produce nil pointer")
	}
}
