// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package models

import "time"

// WatchState is the per-episode watch status.
type WatchState int

// Episode watch states. The numeric values are part of the stored format.
const (
	WatchStateUnwatched WatchState = 0
	WatchStateSkipped   WatchState = 1
	WatchStateWatched   WatchState = 2
)

// JournalEntry is a freeform note attached to a watched episode.
type JournalEntry struct {
	Text      string    `json:"text"`
	Mood      string    `json:"mood,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EpisodeProgress is the progress record for a single episode.
type EpisodeProgress struct {
	Status  WatchState    `json:"status"`
	Journal *JournalEntry `json:"journal,omitempty"`
}

// TitleProgress maps seasonNumber -> episodeNumber -> EpisodeProgress for one
// title. The map is sparse: only touched episodes exist.
type TitleProgress map[int]map[int]EpisodeProgress

// ProgressStore is the full per-title nested progress record,
// keyed by title ID.
type ProgressStore map[int]TitleProgress

// Episode returns the progress record for (season, episode). Absence is
// equivalent to unwatched; the zero EpisodeProgress encodes exactly that.
func (p TitleProgress) Episode(season, episode int) EpisodeProgress {
	if eps, ok := p[season]; ok {
		if rec, ok := eps[episode]; ok {
			return rec
		}
	}
	return EpisodeProgress{}
}

// WatchedCount returns the number of episodes marked watched across all
// seasons of the title.
func (p TitleProgress) WatchedCount() int {
	n := 0
	for _, eps := range p {
		for _, rec := range eps {
			if rec.Status == WatchStateWatched {
				n++
			}
		}
	}
	return n
}

// Set records progress for (season, episode), allocating the nested maps as
// needed.
func (p TitleProgress) Set(season, episode int, rec EpisodeProgress) {
	eps, ok := p[season]
	if !ok {
		eps = make(map[int]EpisodeProgress)
		p[season] = eps
	}
	eps[episode] = rec
}

// Title returns the progress record for a title, or an empty record if the
// title has never been touched.
func (s ProgressStore) Title(titleID int) TitleProgress {
	if tp, ok := s[titleID]; ok {
		return tp
	}
	return TitleProgress{}
}
