// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package engine

import (
	"time"

	"github.com/tomtom215/showlog/internal/models"
)

// ClassifyTVStatus classifies a series against the wall clock.
// See ClassifyTVStatusAt.
func ClassifyTVStatus(details *models.TitleDetails, progress models.TitleProgress, preset models.LibraryStatus) models.LibraryStatus {
	return ClassifyTVStatusAt(details, progress, preset, time.Now())
}

// ClassifyTVStatusAt maps a series' metadata and per-episode watch state to
// an automatic library status:
//
//   - completed: the series has ended (Ended/Canceled) and the user has
//     watched at least the declared total episode count.
//   - all_caught_up: the user has watched everything that has aired so far,
//     but the series may still be producing more.
//   - watching: some episodes watched, more aired episodes remain.
//
// A title with zero watched episodes is never promoted into an automatic
// status: the manual preset is returned if one is set, otherwise StatusNone.
// StatusNone tells the caller to leave the title's current list membership
// untouched; it is not an error.
func ClassifyTVStatusAt(details *models.TitleDetails, progress models.TitleProgress, preset models.LibraryStatus, now time.Time) models.LibraryStatus {
	totalWatched := progress.WatchedCount()
	if totalWatched == 0 {
		if preset.IsManualPreset() {
			return preset
		}
		return models.StatusNone
	}

	totalAired := airedEpisodeCount(details, now)
	totalInShow := details.NumberOfEpisodes

	ended := details.Status == models.SeriesStatusEnded || details.Status == models.SeriesStatusCanceled
	if ended && totalWatched >= totalInShow {
		return models.StatusCompleted
	}
	if totalWatched >= totalAired {
		return models.StatusAllCaughtUp
	}
	return models.StatusWatching
}

// ClassifyMovieStatus classifies a movie against the wall clock.
// See ClassifyMovieStatusAt for the rules.
func ClassifyMovieStatus(mediaID int, events []models.WatchEvent, paused []models.PausedSession, preset models.LibraryStatus) models.LibraryStatus {
	return ClassifyMovieStatusAt(mediaID, events, paused, preset)
}

// ClassifyMovieStatusAt classifies a movie:
//
//   - completed: any non-live-session watch event exists for the movie.
//   - watching: a paused live-watch session exists for the movie.
//   - otherwise the manual preset if set, else StatusNone.
func ClassifyMovieStatusAt(mediaID int, events []models.WatchEvent, paused []models.PausedSession, preset models.LibraryStatus) models.LibraryStatus {
	for _, ev := range events {
		if ev.MediaID == mediaID && ev.MediaType == models.MediaTypeMovie && ev.Source != models.SourceLiveSession {
			return models.StatusCompleted
		}
	}
	for _, s := range paused {
		if s.MediaID == mediaID && s.MediaType == models.MediaTypeMovie {
			return models.StatusWatching
		}
	}
	if preset.IsManualPreset() {
		return preset
	}
	return models.StatusNone
}

// LatestWatched returns the (season, episode) pair of the most recently
// watched episode under (season asc, episode asc) ordering, and whether any
// episode has been watched at all. Used by callers to surface a "next up"
// position.
func LatestWatched(progress models.TitleProgress) (season, episode int, ok bool) {
	for s, eps := range progress {
		for e, rec := range eps {
			if rec.Status != models.WatchStateWatched {
				continue
			}
			if !ok || s > season || (s == season && e > episode) {
				season, episode, ok = s, e, true
			}
		}
	}
	return season, episode, ok
}

// airedEpisodeCount counts episodes whose air date is on or before now,
// across all non-special seasons (season number > 0). Episodes without a
// parseable air date are treated as unaired.
func airedEpisodeCount(details *models.TitleDetails, now time.Time) int {
	aired := 0
	for _, season := range details.Seasons {
		if season.SeasonNumber <= 0 {
			continue
		}
		for _, ep := range season.Episodes {
			if ep.Aired(now) {
				aired++
			}
		}
	}
	return aired
}
