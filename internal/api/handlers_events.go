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

// RecordEventRequest is the body for POST /api/v1/events.
type RecordEventRequest struct {
	MediaID       int    `json:"media_id" validate:"required,gt=0"`
	MediaType     string `json:"media_type" validate:"required,oneof=tv movie"`
	WatchedAt     string `json:"watched_at" validate:"required"`
	SeasonNumber  int    `json:"season_number" validate:"omitempty,min=0"`
	EpisodeNumber int    `json:"episode_number" validate:"omitempty,min=0"`
	Source        string `json:"source" validate:"omitempty,oneof=organic live_session bulk_import"`
}

// RecordEvent appends one watch event to the log. WatchedAt is stored
// verbatim; a malformed timestamp is accepted here and excluded later by
// aggregation.
func (h *Handler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecordEventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	source := models.WatchSource(req.Source)
	if source == "" {
		source = models.SourceOrganic
	}
	event := &models.WatchEvent{
		MediaID:       req.MediaID,
		MediaType:     models.MediaType(req.MediaType),
		WatchedAt:     req.WatchedAt,
		SeasonNumber:  req.SeasonNumber,
		EpisodeNumber: req.EpisodeNumber,
		Source:        source,
	}
	if err := h.store.InsertWatchEvent(r.Context(), event); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record event", err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, event, start)
}

// ListEvents returns the event log with pagination, optionally filtered by
// media_id.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaID := getIntParam(r, "media_id", 0)
	limit := getIntParam(r, "limit", 100)
	offset := getIntParam(r, "offset", 0)
	if limit < 1 || limit > 1000 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be between 1 and 1000", nil)
		return
	}
	if offset < 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "offset must not be negative", nil)
		return
	}

	events, err := h.store.ListWatchEvents(r.Context(), mediaID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list events", err)
		return
	}
	total, err := h.store.CountWatchEvents(r.Context(), mediaID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count events", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	}, start)
}

// DeleteEvent removes one watch event by log ID.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	logID := chi.URLParam(r, "logID")
	if logID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "log ID is required", nil)
		return
	}

	deleted, err := h.store.DeleteWatchEvent(r.Context(), logID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete event", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No event with that log ID", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]string{"deleted": logID}, start)
}
