// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Registration represents a row in the registrations table.
type Registration struct {
	ID                 int64
	RegistrationNumber string
	EventID            int64
	UserID             int64
	Vehicle            string
	CompetitionClass   string
	Status             string
	CheckedInAt        sql.NullTime
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const registrationColumns = `id, registration_number, event_id, user_id, vehicle,
	competition_class, status, checked_in_at, created_at, updated_at`

func scanRegistration(row interface{ Scan(...any) error }) (Registration, error) {
	var r Registration
	err := row.Scan(
		&r.ID, &r.RegistrationNumber, &r.EventID, &r.UserID, &r.Vehicle,
		&r.CompetitionClass, &r.Status, &r.CheckedInAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// ListRegistrationsParams holds optional filters for listing
// registrations. Zero values disable the corresponding filter.
type ListRegistrationsParams struct {
	EventID int64
	UserID  int64
	Status  string
}

// ListRegistrations returns registrations matching the filters, newest first.
func (q *Queries) ListRegistrations(ctx context.Context, arg ListRegistrationsParams) ([]Registration, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+registrationColumns+` FROM registrations
		WHERE (? = 0 OR event_id = ?) AND (? = 0 OR user_id = ?) AND (? = '' OR status = ?)
		ORDER BY created_at DESC`,
		arg.EventID, arg.EventID, arg.UserID, arg.UserID, arg.Status, arg.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

// GetRegistrationByID returns a single registration.
func (q *Queries) GetRegistrationByID(ctx context.Context, id int64) (Registration, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id)
	return scanRegistration(row)
}

// CreateRegistrationParams holds the fields for creating a registration.
type CreateRegistrationParams struct {
	RegistrationNumber string
	EventID            int64
	UserID             int64
	Vehicle            string
	CompetitionClass   string
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateRegistration inserts a registration and returns the stored row.
func (q *Queries) CreateRegistration(ctx context.Context, arg CreateRegistrationParams) (Registration, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO registrations (registration_number, event_id, user_id,
			vehicle, competition_class, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+registrationColumns,
		arg.RegistrationNumber, arg.EventID, arg.UserID, arg.Vehicle,
		arg.CompetitionClass, arg.Status, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanRegistration(row)
}

// UpdateRegistrationStatusParams holds a registration status update.
type UpdateRegistrationStatusParams struct {
	ID        int64
	Status    string
	UpdatedAt time.Time
}

// UpdateRegistrationStatus sets a registration's status.
func (q *Queries) UpdateRegistrationStatus(ctx context.Context, arg UpdateRegistrationStatusParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE registrations SET status = ?, updated_at = ? WHERE id = ?`,
		arg.Status, arg.UpdatedAt, arg.ID)
	return err
}

// CheckInRegistration marks a registration as checked in at the given time.
func (q *Queries) CheckInRegistration(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE registrations
		SET status = 'checked_in', checked_in_at = ?, updated_at = ?
		WHERE id = ?`,
		at, at, id)
	return err
}

// RegistrationStatusCount is a per-status registration count for an event.
type RegistrationStatusCount struct {
	Status string
	Count  int64
}

// CountRegistrationsByStatus returns registration counts per status for
// an event, for the admin dashboard.
func (q *Queries) CountRegistrationsByStatus(ctx context.Context, eventID int64) ([]RegistrationStatusCount, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT status, COUNT(1) FROM registrations
		WHERE event_id = ?
		GROUP BY status ORDER BY status`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []RegistrationStatusCount
	for rows.Next() {
		var c RegistrationStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
