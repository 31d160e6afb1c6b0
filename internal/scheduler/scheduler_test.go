// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
	"github.com/soundoffhq/soundoff-go/internal/testutil"
)

func TestCompletePastEvents(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)

	now := time.Now()
	past, err := queries.CreateEvent(ctx, store.CreateEventParams{
		Name:      "Last Month Finals",
		Slug:      "last-month-finals",
		EventType: model.EventTypeSPL,
		StartDate: now.AddDate(0, -1, 0),
		Status:    model.EventStatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	upcoming, err := queries.CreateEvent(ctx, store.CreateEventParams{
		Name:      "Next Month Qualifier",
		Slug:      "next-month-qualifier",
		EventType: model.EventTypeSQ,
		StartDate: now.AddDate(0, 1, 0),
		Status:    model.EventStatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	s := New(db, testutil.TestLogger())
	if err := s.completePastEvents(); err != nil {
		t.Fatalf("completePastEvents: %v", err)
	}

	got, err := queries.GetEventByID(ctx, past.ID)
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if got.Status != model.EventStatusCompleted {
		t.Errorf("past event status = %q, want %q", got.Status, model.EventStatusCompleted)
	}

	got, err = queries.GetEventByID(ctx, upcoming.ID)
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if got.Status != model.EventStatusPublished {
		t.Errorf("upcoming event status = %q, want %q", got.Status, model.EventStatusPublished)
	}
}

func TestExpireAds(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()
	queries := store.New(db)

	now := time.Now()
	expired, err := queries.CreateAdCampaign(ctx, store.CreateAdCampaignParams{
		Name:      "Old Promo",
		Zone:      model.AdZoneHeader,
		StartsAt:  now.AddDate(0, -2, 0),
		EndsAt:    now.AddDate(0, -1, 0),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateAdCampaign: %v", err)
	}

	s := New(db, testutil.TestLogger())
	if err := s.expireAds(); err != nil {
		t.Fatalf("expireAds: %v", err)
	}

	got, err := queries.GetAdCampaignByID(ctx, expired.ID)
	if err != nil {
		t.Fatalf("GetAdCampaignByID: %v", err)
	}
	if got.IsActive {
		t.Errorf("expired campaign still active")
	}
}
