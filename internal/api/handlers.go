// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package api serves Showlog's HTTP API: watch event ingestion, episode
// progress and journals, library management, custom lists, and the computed
// stats and achievements views. Routing uses chi with CORS, rate limiting,
// request IDs, and Prometheus instrumentation.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/showlog/internal/engine"
	"github.com/tomtom215/showlog/internal/metrics"
	"github.com/tomtom215/showlog/internal/models"
	"github.com/tomtom215/showlog/internal/reclassify"
)

// Store is the persistence surface the handlers depend on. *database.DB
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error

	InsertWatchEvent(ctx context.Context, event *models.WatchEvent) error
	DeleteWatchEvent(ctx context.Context, logID string) (bool, error)
	DeleteEventsForMedia(ctx context.Context, mediaID int) (int64, error)
	ListWatchEvents(ctx context.Context, mediaID, limit, offset int) ([]models.WatchEvent, error)
	CountWatchEvents(ctx context.Context, mediaID int) (int, error)

	SetEpisodeProgress(ctx context.Context, mediaID, season, episode int, rec models.EpisodeProgress) error
	EpisodeProgress(ctx context.Context, mediaID, season, episode int) (models.EpisodeProgress, error)
	DeleteProgressForMedia(ctx context.Context, mediaID int) error

	UpsertLibraryItem(ctx context.Context, item models.TrackedItem, status models.LibraryStatus) error
	SetItemStatus(ctx context.Context, mediaID int, status models.LibraryStatus) (bool, error)
	ItemStatus(ctx context.Context, mediaID int) (models.LibraryStatus, error)
	RemoveLibraryItem(ctx context.Context, mediaID int) (bool, error)
	SetFavorite(ctx context.Context, mediaID int, favorite bool) (bool, error)
	SetRating(ctx context.Context, mediaID, rating int) error
	DeleteRating(ctx context.Context, mediaID int) error
	SetManualPreset(ctx context.Context, mediaID int, status models.LibraryStatus) error
	ClearManualPreset(ctx context.Context, mediaID int) error

	CreateCustomList(ctx context.Context, name string) (*models.CustomList, error)
	DeleteCustomList(ctx context.Context, listID string) (bool, error)
	AddListItem(ctx context.Context, listID string, item models.TrackedItem) (bool, error)
	RemoveListItem(ctx context.Context, listID string, mediaID int) (bool, error)

	UpsertPausedSession(ctx context.Context, s models.PausedSession) error
	DeletePausedSession(ctx context.Context, mediaID int) error

	LoadUserData(ctx context.Context) (*models.UserData, error)
}

// Handler holds the dependencies shared by all endpoint handlers.
type Handler struct {
	store      Store
	reclassify *reclassify.Runner
}

// NewHandler creates the API handler set. runner may be nil when no metadata
// provider is configured; the reclassify endpoint then returns 503.
func NewHandler(store Store, runner *reclassify.Runner) *Handler {
	return &Handler{store: store, reclassify: runner}
}

// Health reports liveness and database connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondSuccess(w, r, code, map[string]string{"status": status}, start)
}

// Stats computes and returns the full CalculatedStats snapshot.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	u, err := h.store.LoadUserData(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user data", err)
		return
	}

	stats := engine.ComputeStats(u)
	metrics.RecordStatsCompute(time.Since(start))

	respondSuccess(w, r, http.StatusOK, stats, start)
}

// Achievements evaluates the full achievement catalog against current stats.
func (h *Handler) Achievements(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	u, err := h.store.LoadUserData(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user data", err)
		return
	}

	stats := engine.ComputeStats(u)
	statuses := engine.EvaluateAchievements(u, stats)

	unlocked := 0
	for _, s := range statuses {
		if s.Unlocked {
			unlocked++
		}
	}
	metrics.AchievementsUnlocked.Set(float64(unlocked))

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"achievements": statuses,
		"unlocked":     unlocked,
	}, start)
}

// Reclassify runs one library reclassification cycle synchronously.
func (h *Handler) Reclassify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.reclassify == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR",
			"Metadata provider not configured", nil)
		return
	}

	result, err := h.reclassify.RunCycle(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RECLASSIFY_ERROR",
			"Reclassification cycle failed", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, result, start)
}
