// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: closing out
// past events, expiring ad campaigns, and pruning the event log.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/soundoffhq/soundoff-go/internal/store"
)

// logRetention is how long event log entries are kept.
const logRetention = 90 * 24 * time.Hour

// Scheduler handles periodic maintenance jobs.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and begins running them.
func (s *Scheduler) Start() error {
	// Hourly: mark published events whose date has passed as completed.
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.completePastEvents(); err != nil {
			s.logger.Error("failed to complete past events", "error", err)
		}
	}); err != nil {
		return err
	}

	// Hourly: deactivate ad campaigns past their end date.
	if _, err := s.cron.AddFunc("30 * * * *", func() {
		if err := s.expireAds(); err != nil {
			s.logger.Error("failed to expire ads", "error", err)
		}
	}); err != nil {
		return err
	}

	// Daily: prune old event log entries.
	if _, err := s.cron.AddFunc("15 3 * * *", func() {
		if err := s.purgeOldLogs(); err != nil {
			s.logger.Error("failed to purge event log", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) completePastEvents() error {
	queries := store.New(s.db)
	n, err := queries.CompletePastEvents(context.Background(), time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("completed past events", "category", "event", "count", n)
	}
	return nil
}

func (s *Scheduler) expireAds() error {
	queries := store.New(s.db)
	n, err := queries.DeactivateExpiredAds(context.Background(), time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("deactivated expired ads", "category", "system", "count", n)
	}
	return nil
}

func (s *Scheduler) purgeOldLogs() error {
	queries := store.New(s.db)
	cutoff := time.Now().Add(-logRetention)
	n, err := queries.PurgeLogEntriesBefore(context.Background(), cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("purged event log entries", "category", "system", "count", n)
	}
	return nil
}
