// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package models

import "time"

// Series lifecycle statuses as reported by the metadata provider.
const (
	SeriesStatusReturning = "Returning Series"
	SeriesStatusEnded     = "Ended"
	SeriesStatusCanceled  = "Canceled"
)

// TitleDetails is the metadata-provider view of one title: enough structure
// for the status classifier to count aired episodes and detect a finished
// series. Lookup failures are handled by the caller ("skip this title this
// cycle"); this struct is only ever constructed from a successful lookup.
type TitleDetails struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	MediaType        MediaType       `json:"media_type"`
	Status           string          `json:"status,omitempty"`
	NumberOfEpisodes int             `json:"number_of_episodes,omitempty"`
	NumberOfSeasons  int             `json:"number_of_seasons,omitempty"`
	GenreIDs         []int           `json:"genre_ids,omitempty"`
	Genres           map[int]string  `json:"genres,omitempty"`
	Seasons          []SeasonDetails `json:"seasons,omitempty"`
}

// SeasonDetails describes one season of a series. Season number 0 is the
// specials season and is excluded from aired-episode counting.
type SeasonDetails struct {
	SeasonNumber int              `json:"season_number"`
	EpisodeCount int              `json:"episode_count"`
	Episodes     []EpisodeDetails `json:"episodes,omitempty"`
}

// EpisodeDetails describes one episode. AirDate uses the provider's
// YYYY-MM-DD date format and may be empty for unscheduled episodes.
type EpisodeDetails struct {
	EpisodeNumber int    `json:"episode_number"`
	AirDate       string `json:"air_date,omitempty"`
}

// Aired reports whether the episode has aired on or before now. Episodes
// with a missing or malformed air date are treated as not yet aired.
func (e EpisodeDetails) Aired(now time.Time) bool {
	if e.AirDate == "" {
		return false
	}
	d, err := time.ParseInLocation("2006-01-02", e.AirDate, now.Location())
	if err != nil {
		return false
	}
	return !d.After(now)
}
