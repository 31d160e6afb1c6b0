// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Event represents a row in the events table.
type Event struct {
	ID          int64
	Name        string
	Slug        string
	EventType   string
	Description string
	Location    string
	StartDate   time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const eventColumns = `id, name, slug, event_type, description, location,
	start_date, status, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Slug, &e.EventType, &e.Description, &e.Location,
		&e.StartDate, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// ListEventsParams holds optional filters for listing events. Empty
// strings disable the corresponding filter.
type ListEventsParams struct {
	Status    string
	EventType string
	Limit     int64
}

// ListEvents returns events matching the filters, soonest first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE (? = '' OR status = ?) AND (? = '' OR event_type = ?)
		ORDER BY start_date
		LIMIT ?`,
		arg.Status, arg.Status, arg.EventType, arg.EventType, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEventByID returns a single event.
func (q *Queries) GetEventByID(ctx context.Context, id int64) (Event, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

// GetEventBySlug returns a single event by slug.
func (q *Queries) GetEventBySlug(ctx context.Context, slug string) (Event, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE slug = ?`, slug)
	return scanEvent(row)
}

// EventSlugExists reports whether an event with the given slug exists.
func (q *Queries) EventSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM events WHERE slug = ?`, slug).Scan(&n)
	return n != 0, err
}

// EventSlugExistsExcludingParams holds the arguments for
// EventSlugExistsExcluding.
type EventSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// EventSlugExistsExcluding reports whether another event already uses
// the slug.
func (q *Queries) EventSlugExistsExcluding(ctx context.Context, arg EventSlugExistsExcludingParams) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM events WHERE slug = ? AND id != ?`,
		arg.Slug, arg.ID).Scan(&n)
	return n != 0, err
}

// CreateEventParams holds the fields for creating an event.
type CreateEventParams struct {
	Name        string
	Slug        string
	EventType   string
	Description string
	Location    string
	StartDate   time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEvent inserts an event and returns the stored row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO events (name, slug, event_type, description, location,
			start_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns,
		arg.Name, arg.Slug, arg.EventType, arg.Description, arg.Location,
		arg.StartDate, arg.Status, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanEvent(row)
}

// UpdateEventParams holds the fields for updating an event.
type UpdateEventParams struct {
	ID          int64
	Name        string
	Slug        string
	EventType   string
	Description string
	Location    string
	StartDate   time.Time
	Status      string
	UpdatedAt   time.Time
}

// UpdateEvent updates an event.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE events
		SET name = ?, slug = ?, event_type = ?, description = ?, location = ?,
			start_date = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+eventColumns,
		arg.Name, arg.Slug, arg.EventType, arg.Description, arg.Location,
		arg.StartDate, arg.Status, arg.UpdatedAt, arg.ID,
	)
	return scanEvent(row)
}

// DeleteEvent removes an event. Registrations cascade at the schema level.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}

// CompletePastEvents marks published events whose start date has passed
// as completed. Returns the number of events transitioned.
func (q *Queries) CompletePastEvents(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE events SET status = 'completed', updated_at = ?
		WHERE status = 'published' AND start_date < ?`,
		now, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
