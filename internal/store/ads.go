// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// AdCampaign represents a row in the ad_campaigns table.
type AdCampaign struct {
	ID          int64
	Name        string
	ImageURL    string
	TargetURL   string
	Zone        string
	StartsAt    time.Time
	EndsAt      time.Time
	IsActive    bool
	Impressions int64
	Clicks      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const adColumns = `id, name, image_url, target_url, zone, starts_at, ends_at,
	is_active, impressions, clicks, created_at, updated_at`

func scanAd(row interface{ Scan(...any) error }) (AdCampaign, error) {
	var a AdCampaign
	err := row.Scan(
		&a.ID, &a.Name, &a.ImageURL, &a.TargetURL, &a.Zone, &a.StartsAt,
		&a.EndsAt, &a.IsActive, &a.Impressions, &a.Clicks,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// ListAdCampaigns returns all ad campaigns, newest first.
func (q *Queries) ListAdCampaigns(ctx context.Context) ([]AdCampaign, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+adColumns+` FROM ad_campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []AdCampaign
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, a)
	}
	return ads, rows.Err()
}

// GetAdCampaignByID returns a single ad campaign.
func (q *Queries) GetAdCampaignByID(ctx context.Context, id int64) (AdCampaign, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adColumns+` FROM ad_campaigns WHERE id = ?`, id)
	return scanAd(row)
}

// PickAdForZoneParams selects the zone and reference time for ad serving.
type PickAdForZoneParams struct {
	Zone string
	Now  time.Time
}

// PickAdForZone returns the least-served active campaign for a zone
// whose date window contains the reference time.
func (q *Queries) PickAdForZone(ctx context.Context, arg PickAdForZoneParams) (AdCampaign, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+adColumns+` FROM ad_campaigns
		WHERE zone = ? AND is_active = 1 AND starts_at <= ? AND ends_at >= ?
		ORDER BY impressions, id
		LIMIT 1`,
		arg.Zone, arg.Now, arg.Now)
	return scanAd(row)
}

// CreateAdCampaignParams holds the fields for creating an ad campaign.
type CreateAdCampaignParams struct {
	Name      string
	ImageURL  string
	TargetURL string
	Zone      string
	StartsAt  time.Time
	EndsAt    time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateAdCampaign inserts an ad campaign and returns the stored row.
func (q *Queries) CreateAdCampaign(ctx context.Context, arg CreateAdCampaignParams) (AdCampaign, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO ad_campaigns (name, image_url, target_url, zone,
			starts_at, ends_at, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+adColumns,
		arg.Name, arg.ImageURL, arg.TargetURL, arg.Zone,
		arg.StartsAt, arg.EndsAt, arg.IsActive, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanAd(row)
}

// UpdateAdCampaignParams holds the fields for updating an ad campaign.
type UpdateAdCampaignParams struct {
	ID        int64
	Name      string
	ImageURL  string
	TargetURL string
	Zone      string
	StartsAt  time.Time
	EndsAt    time.Time
	IsActive  bool
	UpdatedAt time.Time
}

// UpdateAdCampaign updates an ad campaign.
func (q *Queries) UpdateAdCampaign(ctx context.Context, arg UpdateAdCampaignParams) (AdCampaign, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE ad_campaigns
		SET name = ?, image_url = ?, target_url = ?, zone = ?,
			starts_at = ?, ends_at = ?, is_active = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+adColumns,
		arg.Name, arg.ImageURL, arg.TargetURL, arg.Zone,
		arg.StartsAt, arg.EndsAt, arg.IsActive, arg.UpdatedAt, arg.ID,
	)
	return scanAd(row)
}

// DeleteAdCampaign removes an ad campaign.
func (q *Queries) DeleteAdCampaign(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM ad_campaigns WHERE id = ?`, id)
	return err
}

// IncrementAdImpressions bumps a campaign's impression counter.
func (q *Queries) IncrementAdImpressions(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE ad_campaigns SET impressions = impressions + 1 WHERE id = ?`, id)
	return err
}

// IncrementAdClicks bumps a campaign's click counter.
func (q *Queries) IncrementAdClicks(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE ad_campaigns SET clicks = clicks + 1 WHERE id = ?`, id)
	return err
}

// DeactivateExpiredAds deactivates campaigns whose end date has passed.
// Returns the number of campaigns deactivated.
func (q *Queries) DeactivateExpiredAds(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE ad_campaigns SET is_active = 0, updated_at = ?
		WHERE is_active = 1 AND ends_at < ?`,
		now, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
