// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package reclassify

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/showlog/internal/models"
)

type fakeStore struct {
	data        *models.UserData
	transitions map[int]models.LibraryStatus
	cleared     map[int]bool
}

func (s *fakeStore) LoadUserData(_ context.Context) (*models.UserData, error) {
	return s.data, nil
}

func (s *fakeStore) SetItemStatus(_ context.Context, mediaID int, status models.LibraryStatus) (bool, error) {
	if s.transitions == nil {
		s.transitions = map[int]models.LibraryStatus{}
	}
	s.transitions[mediaID] = status
	return true, nil
}

func (s *fakeStore) ClearManualPreset(_ context.Context, mediaID int) error {
	if s.cleared == nil {
		s.cleared = map[int]bool{}
	}
	s.cleared[mediaID] = true
	return nil
}

type fakeProvider struct {
	details map[int]*models.TitleDetails
	err     error
}

func (p *fakeProvider) TitleDetails(_ context.Context, mediaID int) (*models.TitleDetails, error) {
	if p.err != nil {
		return nil, p.err
	}
	d, ok := p.details[mediaID]
	if !ok {
		return nil, errors.New("unknown title")
	}
	return d, nil
}

func endedSeries(id, episodes int) *models.TitleDetails {
	eps := make([]models.EpisodeDetails, episodes)
	for i := range eps {
		eps[i] = models.EpisodeDetails{EpisodeNumber: i + 1, AirDate: "2020-01-01"}
	}
	return &models.TitleDetails{
		ID:               id,
		MediaType:        models.MediaTypeTV,
		Status:           models.SeriesStatusEnded,
		NumberOfEpisodes: episodes,
		Seasons:          []models.SeasonDetails{{SeasonNumber: 1, EpisodeCount: episodes, Episodes: eps}},
	}
}

func watchedAll(id, episodes int) models.ProgressStore {
	tp := models.TitleProgress{}
	for e := 1; e <= episodes; e++ {
		tp.Set(1, e, models.EpisodeProgress{Status: models.WatchStateWatched})
	}
	return models.ProgressStore{id: tp}
}

func TestRunCyclePromotesFinishedSeries(t *testing.T) {
	store := &fakeStore{data: &models.UserData{
		Library: models.Library{
			Watching: []models.TrackedItem{{ID: 1399, MediaType: models.MediaTypeTV}},
		},
		Progress: watchedAll(1399, 3),
	}}
	provider := &fakeProvider{details: map[int]*models.TitleDetails{1399: endedSeries(1399, 3)}}

	result, err := NewRunner(store, provider, 0).RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}
	if store.transitions[1399] != models.StatusCompleted {
		t.Errorf("Expected promotion to completed, got %s", store.transitions[1399])
	}
	if result.Transitions["watching>completed"] != 1 {
		t.Errorf("Expected watching>completed transition, got %v", result.Transitions)
	}
	if !store.cleared[1399] {
		t.Error("Expected manual preset cleared after automatic classification")
	}
}

func TestRunCycleSkipsOnMetadataFailure(t *testing.T) {
	store := &fakeStore{data: &models.UserData{
		Library: models.Library{
			Watching: []models.TrackedItem{{ID: 1399, MediaType: models.MediaTypeTV}},
		},
		Progress: watchedAll(1399, 3),
	}}
	provider := &fakeProvider{err: errors.New("provider down")}

	result, err := NewRunner(store, provider, 0).RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped title, got %d", result.Skipped)
	}
	if len(store.transitions) != 0 {
		t.Errorf("Expected no transitions on metadata failure, got %v", store.transitions)
	}
}

func TestRunCycleMovieCompletion(t *testing.T) {
	store := &fakeStore{data: &models.UserData{
		Events: []models.WatchEvent{{
			MediaID:   603,
			MediaType: models.MediaTypeMovie,
			WatchedAt: "2026-08-30T20:00:00Z",
			Source:    models.SourceOrganic,
		}},
		Library: models.Library{
			PlanToWatch: []models.TrackedItem{{ID: 603, MediaType: models.MediaTypeMovie}},
		},
	}}

	result, err := NewRunner(store, &fakeProvider{}, 0).RunCycle(context.Background())
	if err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}
	if store.transitions[603] != models.StatusCompleted {
		t.Errorf("Expected movie promoted to completed, got %s", store.transitions[603])
	}
	if result.Checked != 1 {
		t.Errorf("Expected 1 checked title, got %d", result.Checked)
	}
}

func TestRunCycleLeavesUntouchedTitlesAlone(t *testing.T) {
	// A tracked series with no watch activity and no preset classifies to
	// StatusNone, which means "do not move".
	store := &fakeStore{data: &models.UserData{
		Library: models.Library{
			PlanToWatch: []models.TrackedItem{{ID: 1399, MediaType: models.MediaTypeTV}},
		},
	}}
	provider := &fakeProvider{details: map[int]*models.TitleDetails{1399: endedSeries(1399, 3)}}

	if _, err := NewRunner(store, provider, 0).RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}
	if len(store.transitions) != 0 {
		t.Errorf("Expected no transitions, got %v", store.transitions)
	}
}
