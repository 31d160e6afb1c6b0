package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soundoffhq/soundoff-go/internal/auth"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates initial data: the default admin user, the baseline
// membership plans, and a minimal navigation menu.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		Role:         "admin",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	plans := []CreatePlanParams{
		{Name: "Competitor", Slug: "competitor", Classification: "competitor",
			PriceCents: 4900, BillingPeriod: "yearly",
			Features: `["Event registration","Member pricing","Season points tracking"]`,
			IsActive: true, SortOrder: 0, CreatedAt: now, UpdatedAt: now},
		{Name: "Judge", Slug: "judge", Classification: "judge",
			PriceCents: 2900, BillingPeriod: "yearly",
			Features: `["Judge certification","Event access"]`,
			IsActive: true, SortOrder: 1, CreatedAt: now, UpdatedAt: now},
		{Name: "Retailer", Slug: "retailer", Classification: "retailer",
			PriceCents: 19900, BillingPeriod: "yearly",
			Features: `["Shop listing","Sponsored events","Ad placement discounts"]`,
			IsActive: true, SortOrder: 2, CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range plans {
		if _, err := queries.CreatePlan(ctx, p); err != nil {
			return fmt.Errorf("seeding plan %s: %w", p.Slug, err)
		}
	}

	items := []CreateMenuItemParams{
		{Title: "Home", Href: sql.NullString{String: "/", Valid: true},
			Icon: sql.NullString{String: "home", Valid: true},
			NavOrder: 0, Visibility: `{"public":true}`, IsActive: true,
			CreatedAt: now, UpdatedAt: now},
		{Title: "Events", Href: sql.NullString{String: "/events", Valid: true},
			Icon: sql.NullString{String: "calendar", Valid: true},
			NavOrder: 1, Visibility: `{"public":true}`, IsActive: true,
			CreatedAt: now, UpdatedAt: now},
		{Title: "Membership", Href: sql.NullString{String: "/membership", Valid: true},
			Icon: sql.NullString{String: "users", Valid: true},
			NavOrder: 2, Visibility: `{"public":true}`, IsActive: true,
			CreatedAt: now, UpdatedAt: now},
	}
	for _, i := range items {
		if _, err := queries.CreateMenuItem(ctx, i); err != nil {
			return fmt.Errorf("seeding menu item %s: %w", i.Title, err)
		}
	}

	slog.Info("seeded baseline plans and navigation")
	return nil
}
