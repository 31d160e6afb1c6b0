// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	handler := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/nav", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200s", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want %d", statuses[2], http.StatusTooManyRequests)
	}

	// A different IP has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/nav", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other IP = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestLoginProtectionLockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
	})
	email := "competitor@example.com"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatalf("fresh account should not be locked")
	}

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatalf("account locked before reaching the limit")
	}

	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatalf("third failure should lock the account")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v, want %v", duration, time.Minute)
	}
	if locked, _ := lp.IsAccountLocked(email); !locked {
		t.Errorf("IsAccountLocked = false after lockout")
	}
}

func TestLoginProtectionMiddlewareLimitsPerIP(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit: 1,
		IPBurst:     2,
	})
	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := post("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("first attempt = %d, want %d", code, http.StatusOK)
	}
	if code := post("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("second attempt = %d, want %d", code, http.StatusOK)
	}
	if code := post("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("third attempt = %d, want %d", code, http.StatusTooManyRequests)
	}

	// Another IP gets its own bucket.
	if code := post("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other IP = %d, want %d", code, http.StatusOK)
	}

	// Non-POST requests pass through untouched.
	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestLoginProtectionClearsOnSuccess(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{MaxFailedAttempts: 2})
	email := "judge@example.com"

	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	// Counter restarted, so one more failure does not lock.
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Errorf("account locked after counter was cleared")
	}
}

func TestLimiterCacheClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")

	if lc.clearIfExceeds(5) {
		t.Errorf("cache cleared below the threshold")
	}
	if !lc.clearIfExceeds(1) {
		t.Errorf("cache not cleared above the threshold")
	}
}
