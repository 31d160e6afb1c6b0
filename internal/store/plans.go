// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// MembershipPlan represents a row in the membership_plans table.
type MembershipPlan struct {
	ID             int64
	Name           string
	Slug           string
	Classification string
	PriceCents     int64
	BillingPeriod  string
	Features       string
	IsActive       bool
	SortOrder      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const planColumns = `id, name, slug, classification, price_cents, billing_period,
	features, is_active, sort_order, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (MembershipPlan, error) {
	var p MembershipPlan
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Classification, &p.PriceCents,
		&p.BillingPeriod, &p.Features, &p.IsActive, &p.SortOrder,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (q *Queries) queryPlans(ctx context.Context, query string, args ...any) ([]MembershipPlan, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []MembershipPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// ListPlans returns all membership plans in display order.
func (q *Queries) ListPlans(ctx context.Context) ([]MembershipPlan, error) {
	return q.queryPlans(ctx,
		`SELECT `+planColumns+` FROM membership_plans ORDER BY sort_order, id`)
}

// ListActivePlans returns active membership plans in display order.
func (q *Queries) ListActivePlans(ctx context.Context) ([]MembershipPlan, error) {
	return q.queryPlans(ctx,
		`SELECT `+planColumns+` FROM membership_plans WHERE is_active = 1 ORDER BY sort_order, id`)
}

// GetPlanByID returns a single membership plan.
func (q *Queries) GetPlanByID(ctx context.Context, id int64) (MembershipPlan, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM membership_plans WHERE id = ?`, id)
	return scanPlan(row)
}

// PlanSlugExists reports whether a plan with the given slug exists.
func (q *Queries) PlanSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM membership_plans WHERE slug = ?`, slug).Scan(&n)
	return n != 0, err
}

// PlanSlugExistsExcludingParams identifies a slug check that ignores one plan.
type PlanSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// PlanSlugExistsExcluding reports whether another plan uses the slug.
func (q *Queries) PlanSlugExistsExcluding(ctx context.Context, arg PlanSlugExistsExcludingParams) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM membership_plans WHERE slug = ? AND id != ?`,
		arg.Slug, arg.ID).Scan(&n)
	return n != 0, err
}

// CreatePlanParams holds the fields for creating a membership plan.
type CreatePlanParams struct {
	Name           string
	Slug           string
	Classification string
	PriceCents     int64
	BillingPeriod  string
	Features       string
	IsActive       bool
	SortOrder      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreatePlan inserts a membership plan and returns the stored row.
func (q *Queries) CreatePlan(ctx context.Context, arg CreatePlanParams) (MembershipPlan, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO membership_plans (name, slug, classification, price_cents,
			billing_period, features, is_active, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+planColumns,
		arg.Name, arg.Slug, arg.Classification, arg.PriceCents,
		arg.BillingPeriod, arg.Features, arg.IsActive, arg.SortOrder,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return scanPlan(row)
}

// UpdatePlanParams holds the fields for updating a membership plan.
type UpdatePlanParams struct {
	ID             int64
	Name           string
	Slug           string
	Classification string
	PriceCents     int64
	BillingPeriod  string
	Features       string
	IsActive       bool
	SortOrder      int64
	UpdatedAt      time.Time
}

// UpdatePlan updates a membership plan.
func (q *Queries) UpdatePlan(ctx context.Context, arg UpdatePlanParams) (MembershipPlan, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE membership_plans
		SET name = ?, slug = ?, classification = ?, price_cents = ?,
			billing_period = ?, features = ?, is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+planColumns,
		arg.Name, arg.Slug, arg.Classification, arg.PriceCents,
		arg.BillingPeriod, arg.Features, arg.IsActive, arg.SortOrder,
		arg.UpdatedAt, arg.ID,
	)
	return scanPlan(row)
}

// DeletePlan removes a membership plan.
func (q *Queries) DeletePlan(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM membership_plans WHERE id = ?`, id)
	return err
}
