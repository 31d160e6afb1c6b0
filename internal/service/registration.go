// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soundoffhq/soundoff-go/internal/model"
	"github.com/soundoffhq/soundoff-go/internal/store"
)

// Registration errors.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventNotOpen        = errors.New("event is not open for registration")
	ErrAlreadyRegistered   = errors.New("user already registered for this event")
	ErrRegistrationMissing = errors.New("registration not found")
	ErrNotConfirmed        = errors.New("only confirmed registrations can check in")
)

// RegistrationService handles competitor registration for events:
// issuing registration numbers, confirming payment, and gate check-in.
type RegistrationService struct {
	queries *store.Queries
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(db *sql.DB) *RegistrationService {
	return &RegistrationService{queries: store.New(db)}
}

// RegisterParams holds a registration request.
type RegisterParams struct {
	EventID          int64
	UserID           int64
	Vehicle          string
	CompetitionClass string
}

// Register creates a pending registration for a published, upcoming
// event. Each registration gets a unique registration number that
// competitors quote at the gate.
func (s *RegistrationService) Register(ctx context.Context, arg RegisterParams) (store.Registration, error) {
	event, err := s.queries.GetEventByID(ctx, arg.EventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Registration{}, ErrEventNotFound
		}
		return store.Registration{}, fmt.Errorf("loading event: %w", err)
	}
	if event.Status != model.EventStatusPublished {
		return store.Registration{}, ErrEventNotOpen
	}

	existing, err := s.queries.ListRegistrations(ctx, store.ListRegistrationsParams{
		EventID: arg.EventID,
		UserID:  arg.UserID,
	})
	if err != nil {
		return store.Registration{}, fmt.Errorf("checking existing registrations: %w", err)
	}
	for _, r := range existing {
		if r.Status != model.RegistrationCancelled {
			return store.Registration{}, ErrAlreadyRegistered
		}
	}

	now := time.Now()
	reg, err := s.queries.CreateRegistration(ctx, store.CreateRegistrationParams{
		RegistrationNumber: uuid.NewString(),
		EventID:            arg.EventID,
		UserID:             arg.UserID,
		Vehicle:            strings.TrimSpace(arg.Vehicle),
		CompetitionClass:   strings.TrimSpace(arg.CompetitionClass),
		Status:             model.RegistrationPendingPayment,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return store.Registration{}, fmt.Errorf("creating registration: %w", err)
	}
	return reg, nil
}

// Confirm marks a pending registration as paid.
func (s *RegistrationService) Confirm(ctx context.Context, id int64) error {
	return s.transition(ctx, id, model.RegistrationPendingPayment, model.RegistrationConfirmed)
}

// Cancel cancels a registration. Checked-in registrations stay as they
// are; the competitor already ran.
func (s *RegistrationService) Cancel(ctx context.Context, id int64) error {
	reg, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if reg.Status == model.RegistrationCheckedIn {
		return fmt.Errorf("registration %s already checked in", reg.RegistrationNumber)
	}
	if reg.Status == model.RegistrationCancelled {
		return nil
	}
	return s.queries.UpdateRegistrationStatus(ctx, store.UpdateRegistrationStatusParams{
		ID:        id,
		Status:    model.RegistrationCancelled,
		UpdatedAt: time.Now(),
	})
}

// CheckIn marks a confirmed registration as arrived at the gate.
func (s *RegistrationService) CheckIn(ctx context.Context, id int64) error {
	reg, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if reg.Status != model.RegistrationConfirmed {
		return ErrNotConfirmed
	}
	return s.queries.CheckInRegistration(ctx, id, time.Now())
}

func (s *RegistrationService) get(ctx context.Context, id int64) (store.Registration, error) {
	reg, err := s.queries.GetRegistrationByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Registration{}, ErrRegistrationMissing
		}
		return store.Registration{}, fmt.Errorf("loading registration: %w", err)
	}
	return reg, nil
}

func (s *RegistrationService) transition(ctx context.Context, id int64, from, to string) error {
	reg, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if reg.Status != from {
		return fmt.Errorf("registration %s is %s, want %s", reg.RegistrationNumber, reg.Status, from)
	}
	return s.queries.UpdateRegistrationStatus(ctx, store.UpdateRegistrationStatusParams{
		ID:        id,
		Status:    to,
		UpdatedAt: time.Now(),
	})
}
