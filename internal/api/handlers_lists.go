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

// CreateListRequest is the body for POST /api/v1/lists.
type CreateListRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

// CreateList creates an empty custom list.
func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CreateListRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	list, err := h.store.CreateCustomList(r.Context(), req.Name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create list", err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, list, start)
}

// Lists returns all custom lists with their items.
func (h *Handler) Lists(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	u, err := h.store.LoadUserData(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load lists", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"lists": u.CustomLists,
	}, start)
}

// DeleteList removes a custom list and its items.
func (h *Handler) DeleteList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	listID := chi.URLParam(r, "listID")
	if listID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "list ID is required", nil)
		return
	}

	deleted, err := h.store.DeleteCustomList(r.Context(), listID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete list", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No list with that ID", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]string{"deleted": listID}, start)
}

// AddListItemRequest is the body for POST list items.
type AddListItemRequest struct {
	MediaID    int    `json:"media_id" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,max=512"`
	MediaType  string `json:"media_type" validate:"required,oneof=tv movie"`
	PosterPath string `json:"poster_path" validate:"omitempty,max=512"`
	GenreIDs   []int  `json:"genre_ids" validate:"omitempty,dive,gt=0"`
}

// AddListItem appends a title to a custom list. Adding a title that is
// already on the list is a no-op.
func (h *Handler) AddListItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	listID := chi.URLParam(r, "listID")
	if listID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "list ID is required", nil)
		return
	}

	var req AddListItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	item := models.TrackedItem{
		ID:         req.MediaID,
		Title:      req.Title,
		MediaType:  models.MediaType(req.MediaType),
		PosterPath: req.PosterPath,
		GenreIDs:   req.GenreIDs,
	}
	added, err := h.store.AddListItem(r.Context(), listID, item)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add list item", err)
		return
	}
	if !added {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No list with that ID", nil)
		return
	}

	respondSuccess(w, r, http.StatusCreated, item, start)
}

// RemoveListItem drops a title from a custom list.
func (h *Handler) RemoveListItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	listID := chi.URLParam(r, "listID")
	if listID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "list ID is required", nil)
		return
	}
	mediaID, ok := pathInt(w, chi.URLParam(r, "mediaID"), "media ID")
	if !ok {
		return
	}

	removed, err := h.store.RemoveListItem(r.Context(), listID, mediaID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove list item", err)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Title is not on that list", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"list_id":  listID,
		"media_id": mediaID,
	}, start)
}
