// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package reclassify runs the periodic library reclassification cycle. Each
// cycle loads the user snapshot, asks the metadata provider for fresh title
// details, and moves tracked titles between status lists according to the
// classifier rules. Metadata failures skip the affected title until the next
// cycle; they never demote or remove it.
package reclassify

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/showlog/internal/engine"
	"github.com/tomtom215/showlog/internal/logging"
	"github.com/tomtom215/showlog/internal/metadata"
	"github.com/tomtom215/showlog/internal/metrics"
	"github.com/tomtom215/showlog/internal/models"
)

// Store is the persistence surface the runner needs.
type Store interface {
	LoadUserData(ctx context.Context) (*models.UserData, error)
	SetItemStatus(ctx context.Context, mediaID int, status models.LibraryStatus) (bool, error)
	ClearManualPreset(ctx context.Context, mediaID int) error
}

// Result summarizes one reclassification cycle.
type Result struct {
	Checked     int            `json:"checked"`
	Transitions map[string]int `json:"transitions,omitempty"`
	Skipped     int            `json:"skipped"`
}

// Runner executes reclassification cycles, either on demand or on a timer.
type Runner struct {
	store    Store
	provider metadata.Provider
	interval time.Duration
}

// NewRunner creates a reclassification runner. interval <= 0 disables the
// periodic loop; RunCycle can still be called directly.
func NewRunner(store Store, provider metadata.Provider, interval time.Duration) *Runner {
	return &Runner{store: store, provider: provider, interval: interval}
}

// Start runs cycles on the configured interval until ctx is canceled.
func (r *Runner) Start(ctx context.Context) {
	if r.interval <= 0 {
		logging.Info().Msg("Reclassification loop disabled")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logging.Info().Dur("interval", r.interval).Msg("Reclassification loop started")
	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Reclassification loop stopped")
			return
		case <-ticker.C:
			if _, err := r.RunCycle(ctx); err != nil {
				logging.Error().Err(err).Msg("Reclassification cycle failed")
			}
		}
	}
}

// RunCycle reclassifies every tracked title once and returns a summary of
// the transitions applied.
func (r *Runner) RunCycle(ctx context.Context) (*Result, error) {
	start := time.Now()

	u, err := r.store.LoadUserData(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	result := &Result{Transitions: map[string]int{}}
	transitionCounts := map[[2]string]int{}

	for _, current := range []models.LibraryStatus{
		models.StatusWatching,
		models.StatusPlanToWatch,
		models.StatusCompleted,
		models.StatusOnHold,
		models.StatusDropped,
		models.StatusAllCaughtUp,
	} {
		for _, item := range u.Library.StatusList(current) {
			result.Checked++

			next, ok := r.classify(ctx, u, item, now)
			if !ok {
				result.Skipped++
				continue
			}
			if next == models.StatusNone || next == current {
				continue
			}

			moved, err := r.store.SetItemStatus(ctx, item.ID, next)
			if err != nil {
				logging.Error().Err(err).Int("media_id", item.ID).Msg("Failed to apply status transition")
				continue
			}
			if !moved {
				continue
			}

			// Watch activity has overridden any pinned manual status.
			if !next.IsManualPreset() {
				if err := r.store.ClearManualPreset(ctx, item.ID); err != nil {
					logging.Warn().Err(err).Int("media_id", item.ID).Msg("Failed to clear manual preset")
				}
			}

			key := string(current) + ">" + string(next)
			result.Transitions[key]++
			transitionCounts[[2]string{string(current), string(next)}]++
			logging.Debug().
				Int("media_id", item.ID).
				Str("from", string(current)).
				Str("to", string(next)).
				Msg("Reclassified title")
		}
	}

	metrics.RecordReclassification(time.Since(start), transitionCounts, result.Skipped)
	logging.Info().
		Int("checked", result.Checked).
		Int("moved", len(result.Transitions)).
		Int("skipped", result.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("Reclassification cycle complete")

	return result, nil
}

// classify computes the next status for one tracked title. ok is false when
// the title must be skipped this cycle (metadata unavailable).
func (r *Runner) classify(ctx context.Context, u *models.UserData, item models.TrackedItem, now time.Time) (models.LibraryStatus, bool) {
	preset := u.ManualPresets[item.ID]

	if item.MediaType == models.MediaTypeMovie {
		return engine.ClassifyMovieStatusAt(item.ID, u.Events, u.PausedSessions, preset), true
	}

	details, err := r.provider.TitleDetails(ctx, item.ID)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotConfigured) {
			logging.Warn().Err(err).Int("media_id", item.ID).Msg("Metadata unavailable, skipping title")
		}
		return models.StatusNone, false
	}

	return engine.ClassifyTVStatusAt(details, u.Progress.Title(item.ID), preset, now), true
}
