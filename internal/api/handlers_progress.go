// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/showlog/internal/models"
)

// episodeKey pulls the media/season/episode triple from the URL. ok is false
// when a segment failed to parse and the error response was written.
func episodeKey(w http.ResponseWriter, r *http.Request) (mediaID, season, episode int, ok bool) {
	if mediaID, ok = pathInt(w, chi.URLParam(r, "mediaID"), "media ID"); !ok {
		return
	}
	if season, ok = pathInt(w, chi.URLParam(r, "season"), "season number"); !ok {
		return
	}
	episode, ok = pathInt(w, chi.URLParam(r, "episode"), "episode number")
	return
}

// ToggleEpisode flips an episode between unwatched and watched. Marking an
// episode watched also appends an organic watch event so stats and streaks
// pick it up, and clears a stale dropped or on-hold pin since the user is
// actively watching again. Unmarking does not rewrite history.
func (h *Handler) ToggleEpisode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, season, episode, ok := episodeKey(w, r)
	if !ok {
		return
	}

	rec, err := h.store.EpisodeProgress(r.Context(), mediaID, season, episode)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load progress", err)
		return
	}

	if rec.Status == models.WatchStateWatched {
		rec.Status = models.WatchStateUnwatched
	} else {
		rec.Status = models.WatchStateWatched
	}

	if err := h.store.SetEpisodeProgress(r.Context(), mediaID, season, episode, rec); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save progress", err)
		return
	}

	if rec.Status == models.WatchStateWatched {
		event := &models.WatchEvent{
			MediaID:       mediaID,
			MediaType:     models.MediaTypeTV,
			WatchedAt:     time.Now().UTC().Format(time.RFC3339),
			SeasonNumber:  season,
			EpisodeNumber: episode,
			Source:        models.SourceOrganic,
		}
		if err := h.store.InsertWatchEvent(r.Context(), event); err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record watch event", err)
			return
		}

		// Actively watching invalidates a pinned dropped or on-hold status.
		if err := h.store.ClearManualPreset(r.Context(), mediaID); err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to clear manual status", err)
			return
		}
		status, err := h.store.ItemStatus(r.Context(), mediaID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load library status", err)
			return
		}
		if status.IsManualPreset() {
			if _, err := h.store.SetItemStatus(r.Context(), mediaID, models.StatusWatching); err != nil {
				respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update library status", err)
				return
			}
		}
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"media_id": mediaID,
		"season":   season,
		"episode":  episode,
		"status":   rec.Status,
	}, start)
}

// SetEpisodeStateRequest is the body for PUT progress state.
type SetEpisodeStateRequest struct {
	Status int `json:"status" validate:"min=0,max=2"`
}

// SetEpisodeState sets an explicit watch state (unwatched, skipped, watched)
// without emitting a watch event. Used by bulk editing in the UI.
func (h *Handler) SetEpisodeState(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, season, episode, ok := episodeKey(w, r)
	if !ok {
		return
	}

	var req SetEpisodeStateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	rec, err := h.store.EpisodeProgress(r.Context(), mediaID, season, episode)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load progress", err)
		return
	}
	rec.Status = models.WatchState(req.Status)

	if err := h.store.SetEpisodeProgress(r.Context(), mediaID, season, episode, rec); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save progress", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, rec, start)
}

// JournalRequest is the body for PUT journal.
type JournalRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
	Mood string `json:"mood" validate:"omitempty,max=64"`
}

// SetJournal attaches a journal entry to an episode. The watch state is left
// unchanged: journaling an unwatched episode is allowed and keeps the row.
func (h *Handler) SetJournal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, season, episode, ok := episodeKey(w, r)
	if !ok {
		return
	}

	var req JournalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	rec, err := h.store.EpisodeProgress(r.Context(), mediaID, season, episode)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load progress", err)
		return
	}
	rec.Journal = &models.JournalEntry{
		Text:      req.Text,
		Mood:      req.Mood,
		Timestamp: time.Now().UTC(),
	}

	if err := h.store.SetEpisodeProgress(r.Context(), mediaID, season, episode, rec); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save journal", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, rec, start)
}

// DeleteJournal removes the journal entry from an episode, keeping the watch
// state.
func (h *Handler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, season, episode, ok := episodeKey(w, r)
	if !ok {
		return
	}

	rec, err := h.store.EpisodeProgress(r.Context(), mediaID, season, episode)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load progress", err)
		return
	}
	if rec.Journal == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No journal entry for this episode", nil)
		return
	}
	rec.Journal = nil

	if err := h.store.SetEpisodeProgress(r.Context(), mediaID, season, episode, rec); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete journal", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, rec, start)
}
