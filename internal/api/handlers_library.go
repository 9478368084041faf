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

// AddLibraryItemRequest is the body for POST /api/v1/library.
type AddLibraryItemRequest struct {
	MediaID    int    `json:"media_id" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,max=512"`
	MediaType  string `json:"media_type" validate:"required,oneof=tv movie"`
	PosterPath string `json:"poster_path" validate:"omitempty,max=512"`
	GenreIDs   []int  `json:"genre_ids" validate:"omitempty,dive,gt=0"`
	Status     string `json:"status" validate:"omitempty,oneof=watching plan_to_watch completed on_hold dropped all_caught_up"`
}

// AddLibraryItem tracks a title, defaulting to the plan-to-watch list.
func (h *Handler) AddLibraryItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AddLibraryItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	status := models.LibraryStatus(req.Status)
	if status == models.StatusNone {
		status = models.StatusPlanToWatch
	}

	item := models.TrackedItem{
		ID:         req.MediaID,
		Title:      req.Title,
		MediaType:  models.MediaType(req.MediaType),
		PosterPath: req.PosterPath,
		GenreIDs:   req.GenreIDs,
	}
	if err := h.store.UpsertLibraryItem(r.Context(), item, status); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add library item", err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, map[string]interface{}{
		"item":   item,
		"status": status,
	}, start)
}

// Library returns the full library snapshot grouped by status list.
func (h *Handler) Library(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	u, err := h.store.LoadUserData(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load library", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, u.Library, start)
}

// RemoveLibraryItem stops tracking a title. Watch history and progress are
// kept so re-adding the title restores its state, unless purge_history=true
// is passed, which deletes the title's events and progress too.
func (h *Handler) RemoveLibraryItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, ok := pathInt(w, chi.URLParam(r, "mediaID"), "media ID")
	if !ok {
		return
	}

	removed, err := h.store.RemoveLibraryItem(r.Context(), mediaID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove library item", err)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Title is not in the library", nil)
		return
	}

	var purged int64
	if r.URL.Query().Get("purge_history") == "true" {
		purged, err = h.store.DeleteEventsForMedia(r.Context(), mediaID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to purge watch history", err)
			return
		}
		if err := h.store.DeleteProgressForMedia(r.Context(), mediaID); err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to purge progress", err)
			return
		}
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"removed":       mediaID,
		"events_purged": purged,
	}, start)
}

// SetStatusRequest is the body for PUT library status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=watching plan_to_watch completed on_hold dropped all_caught_up"`
}

// SetStatus moves a tracked title to another status list. Manual-preset
// statuses (plan_to_watch, on_hold, dropped) are also pinned so the next
// reclassification cycle respects them.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, ok := pathInt(w, chi.URLParam(r, "mediaID"), "media ID")
	if !ok {
		return
	}

	var req SetStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	status := models.LibraryStatus(req.Status)
	moved, err := h.store.SetItemStatus(r.Context(), mediaID, status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to set status", err)
		return
	}
	if !moved {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Title is not in the library", nil)
		return
	}

	if status.IsManualPreset() {
		if err := h.store.SetManualPreset(r.Context(), mediaID, status); err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to pin manual status", err)
			return
		}
	} else {
		if err := h.store.ClearManualPreset(r.Context(), mediaID); err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to clear manual status", err)
			return
		}
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"media_id": mediaID,
		"status":   status,
	}, start)
}

// FavoriteRequest is the body for PUT favorite.
type FavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// SetFavorite toggles the favorite tag on a tracked title.
func (h *Handler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, ok := pathInt(w, chi.URLParam(r, "mediaID"), "media ID")
	if !ok {
		return
	}

	var req FavoriteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tagged, err := h.store.SetFavorite(r.Context(), mediaID, req.Favorite)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to set favorite", err)
		return
	}
	if !tagged {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Title is not in the library", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"media_id": mediaID,
		"favorite": req.Favorite,
	}, start)
}

// RatingRequest is the body for PUT rating.
type RatingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=10"`
}

// SetRating stores a 1-10 rating for a title.
func (h *Handler) SetRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, ok := pathInt(w, chi.URLParam(r, "mediaID"), "media ID")
	if !ok {
		return
	}

	var req RatingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.store.SetRating(r.Context(), mediaID, req.Rating); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to set rating", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]int{
		"media_id": mediaID,
		"rating":   req.Rating,
	}, start)
}

// DeleteRating removes a title's rating.
func (h *Handler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, ok := pathInt(w, chi.URLParam(r, "mediaID"), "media ID")
	if !ok {
		return
	}

	if err := h.store.DeleteRating(r.Context(), mediaID); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete rating", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]int{"media_id": mediaID}, start)
}

// PauseSessionRequest is the body for PUT paused session.
type PauseSessionRequest struct {
	MediaType string `json:"media_type" validate:"required,oneof=tv movie"`
	PositionS int    `json:"position_seconds" validate:"min=0"`
}

// PauseSession records a paused live-watch session, which classifies a movie
// as watching until it is resumed or cleared.
func (h *Handler) PauseSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, ok := pathInt(w, chi.URLParam(r, "mediaID"), "media ID")
	if !ok {
		return
	}

	var req PauseSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	session := models.PausedSession{
		MediaID:   mediaID,
		MediaType: models.MediaType(req.MediaType),
		PausedAt:  time.Now().UTC(),
		PositionS: req.PositionS,
	}
	if err := h.store.UpsertPausedSession(r.Context(), session); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save paused session", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, session, start)
}

// ClearPausedSession removes a paused session.
func (h *Handler) ClearPausedSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID, ok := pathInt(w, chi.URLParam(r, "mediaID"), "media ID")
	if !ok {
		return
	}

	if err := h.store.DeletePausedSession(r.Context(), mediaID); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to clear paused session", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]int{"media_id": mediaID}, start)
}
