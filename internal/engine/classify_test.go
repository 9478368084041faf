// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package engine

import (
	"testing"
	"time"

	"github.com/tomtom215/showlog/internal/models"
)

// fixedNow pins the classification clock for deterministic aired counts.
var fixedNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

// seriesDetails builds metadata for a single-season series with airedEps
// episodes aired before fixedNow and futureEps scheduled after it.
func seriesDetails(status string, airedEps, futureEps, declaredTotal int) *models.TitleDetails {
	season := models.SeasonDetails{SeasonNumber: 1}
	for i := 1; i <= airedEps; i++ {
		season.Episodes = append(season.Episodes, models.EpisodeDetails{
			EpisodeNumber: i,
			AirDate:       fixedNow.AddDate(0, 0, -airedEps+i-1).Format("2006-01-02"),
		})
	}
	for i := 1; i <= futureEps; i++ {
		season.Episodes = append(season.Episodes, models.EpisodeDetails{
			EpisodeNumber: airedEps + i,
			AirDate:       fixedNow.AddDate(0, 0, 7*i).Format("2006-01-02"),
		})
	}
	return &models.TitleDetails{
		ID:               100,
		MediaType:        models.MediaTypeTV,
		Status:           status,
		NumberOfEpisodes: declaredTotal,
		Seasons:          []models.SeasonDetails{season},
	}
}

// watchedEpisodes marks episodes 1..n of season 1 watched.
func watchedEpisodes(n int) models.TitleProgress {
	progress := models.TitleProgress{}
	for i := 1; i <= n; i++ {
		progress.Set(1, i, models.EpisodeProgress{Status: models.WatchStateWatched})
	}
	return progress
}

func TestClassifyTVStatusAt(t *testing.T) {
	t.Run("untouched title never classifies", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusEnded, 10, 0, 10)
		got := ClassifyTVStatusAt(details, models.TitleProgress{}, models.StatusNone, fixedNow)
		if got != models.StatusNone {
			t.Errorf("Expected no classification for untouched title, got %q", got)
		}
	})

	t.Run("untouched title keeps manual preset", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusReturning, 10, 0, 10)
		got := ClassifyTVStatusAt(details, models.TitleProgress{}, models.StatusPlanToWatch, fixedNow)
		if got != models.StatusPlanToWatch {
			t.Errorf("Expected plan_to_watch preset, got %q", got)
		}
	})

	t.Run("skipped episodes do not count as watched", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusReturning, 10, 0, 10)
		progress := models.TitleProgress{}
		progress.Set(1, 1, models.EpisodeProgress{Status: models.WatchStateSkipped})
		got := ClassifyTVStatusAt(details, progress, models.StatusNone, fixedNow)
		if got != models.StatusNone {
			t.Errorf("Expected no classification with only skipped episodes, got %q", got)
		}
	})

	t.Run("watch activity overrides manual preset", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusReturning, 10, 0, 10)
		got := ClassifyTVStatusAt(details, watchedEpisodes(3), models.StatusDropped, fixedNow)
		if got != models.StatusWatching {
			t.Errorf("Expected watching once activity exists, got %q", got)
		}
	})

	t.Run("all aired watched on returning series is all caught up", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusReturning, 10, 0, 12)
		got := ClassifyTVStatusAt(details, watchedEpisodes(10), models.StatusNone, fixedNow)
		if got != models.StatusAllCaughtUp {
			t.Errorf("Expected all_caught_up at exactly the aired count, got %q", got)
		}
	})

	t.Run("one aired episode short is watching", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusReturning, 10, 0, 12)
		got := ClassifyTVStatusAt(details, watchedEpisodes(9), models.StatusNone, fixedNow)
		if got != models.StatusWatching {
			t.Errorf("Expected watching at 9 of 10 aired, got %q", got)
		}
	})

	t.Run("ended series fully watched is completed", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusEnded, 10, 0, 10)
		got := ClassifyTVStatusAt(details, watchedEpisodes(10), models.StatusNone, fixedNow)
		if got != models.StatusCompleted {
			t.Errorf("Expected completed for finished ended series, got %q", got)
		}
	})

	t.Run("canceled series fully watched is completed", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusCanceled, 8, 0, 8)
		got := ClassifyTVStatusAt(details, watchedEpisodes(8), models.StatusNone, fixedNow)
		if got != models.StatusCompleted {
			t.Errorf("Expected completed for finished canceled series, got %q", got)
		}
	})

	t.Run("ended series caught up but short of declared total", func(t *testing.T) {
		// 10 aired of a declared 12: Ended gate fails, aired gate holds.
		details := seriesDetails(models.SeriesStatusEnded, 10, 0, 12)
		got := ClassifyTVStatusAt(details, watchedEpisodes(10), models.StatusNone, fixedNow)
		if got != models.StatusAllCaughtUp {
			t.Errorf("Expected all_caught_up, got %q", got)
		}
	})

	t.Run("specials season is excluded from aired count", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusReturning, 5, 0, 5)
		details.Seasons = append(details.Seasons, models.SeasonDetails{
			SeasonNumber: 0,
			Episodes: []models.EpisodeDetails{
				{EpisodeNumber: 1, AirDate: "2020-01-01"},
			},
		})
		got := ClassifyTVStatusAt(details, watchedEpisodes(5), models.StatusNone, fixedNow)
		if got != models.StatusAllCaughtUp {
			t.Errorf("Expected specials to be ignored, got %q", got)
		}
	})

	t.Run("unaired episodes do not count against the user", func(t *testing.T) {
		details := seriesDetails(models.SeriesStatusReturning, 10, 3, 13)
		got := ClassifyTVStatusAt(details, watchedEpisodes(10), models.StatusNone, fixedNow)
		if got != models.StatusAllCaughtUp {
			t.Errorf("Expected all_caught_up with future episodes pending, got %q", got)
		}
	})
}

func TestClassifyMovieStatusAt(t *testing.T) {
	movieEvent := func(id int, source models.WatchSource) models.WatchEvent {
		return models.WatchEvent{
			LogID:     "log-1",
			MediaID:   id,
			MediaType: models.MediaTypeMovie,
			WatchedAt: fixedNow.Format(time.RFC3339),
			Source:    source,
		}
	}

	t.Run("organic event marks completed", func(t *testing.T) {
		events := []models.WatchEvent{movieEvent(7, models.SourceOrganic)}
		got := ClassifyMovieStatusAt(7, events, nil, models.StatusNone)
		if got != models.StatusCompleted {
			t.Errorf("Expected completed, got %q", got)
		}
	})

	t.Run("bulk import event still marks completed", func(t *testing.T) {
		events := []models.WatchEvent{movieEvent(7, models.SourceBulkImport)}
		got := ClassifyMovieStatusAt(7, events, nil, models.StatusNone)
		if got != models.StatusCompleted {
			t.Errorf("Expected completed, got %q", got)
		}
	})

	t.Run("live session event alone is not completed", func(t *testing.T) {
		events := []models.WatchEvent{movieEvent(7, models.SourceLiveSession)}
		got := ClassifyMovieStatusAt(7, events, nil, models.StatusNone)
		if got != models.StatusNone {
			t.Errorf("Expected no classification from a live session event, got %q", got)
		}
	})

	t.Run("paused session marks watching", func(t *testing.T) {
		paused := []models.PausedSession{{MediaID: 7, MediaType: models.MediaTypeMovie, PausedAt: fixedNow}}
		got := ClassifyMovieStatusAt(7, nil, paused, models.StatusNone)
		if got != models.StatusWatching {
			t.Errorf("Expected watching, got %q", got)
		}
	})

	t.Run("preset wins when no activity exists", func(t *testing.T) {
		got := ClassifyMovieStatusAt(7, nil, nil, models.StatusOnHold)
		if got != models.StatusOnHold {
			t.Errorf("Expected on_hold preset, got %q", got)
		}
	})

	t.Run("other titles' events are ignored", func(t *testing.T) {
		events := []models.WatchEvent{movieEvent(8, models.SourceOrganic)}
		got := ClassifyMovieStatusAt(7, events, nil, models.StatusNone)
		if got != models.StatusNone {
			t.Errorf("Expected no classification, got %q", got)
		}
	})
}

func TestLatestWatched(t *testing.T) {
	progress := models.TitleProgress{}
	progress.Set(1, 5, models.EpisodeProgress{Status: models.WatchStateWatched})
	progress.Set(2, 3, models.EpisodeProgress{Status: models.WatchStateWatched})
	progress.Set(2, 4, models.EpisodeProgress{Status: models.WatchStateSkipped})

	season, episode, ok := LatestWatched(progress)
	if !ok {
		t.Fatal("Expected a latest watched episode")
	}
	if season != 2 || episode != 3 {
		t.Errorf("Expected S2E3, got S%dE%d", season, episode)
	}

	if _, _, ok := LatestWatched(models.TitleProgress{}); ok {
		t.Error("Expected no latest watched episode for empty progress")
	}
}
