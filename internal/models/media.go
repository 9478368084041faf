// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package models

import "time"

// MediaType identifies the kind of tracked title.
type MediaType string

// Supported media types.
const (
	MediaTypeTV    MediaType = "tv"
	MediaTypeMovie MediaType = "movie"
)

// WatchSource records the provenance of a watch event. It replaces the legacy
// log-ID prefix convention with an explicit enum so that aggregation never has
// to sniff strings to decide whether an event counts as organic activity.
type WatchSource string

// Watch event sources.
const (
	// SourceOrganic is a normal per-episode or per-movie watch logged by the user.
	SourceOrganic WatchSource = "organic"

	// SourceLiveSession is an event emitted by the live-watch session feature.
	SourceLiveSession WatchSource = "live_session"

	// SourceBulkImport is an event created by a bulk history import (CSV, takeout).
	// Bulk-import events count toward lifetime totals but are excluded from
	// streaks and daily/weekly activity counters.
	SourceBulkImport WatchSource = "bulk_import"
)

// LibraryStatus is the named library list a tracked title belongs to.
// A title's identity appears in at most one status list at a time; favorites
// is an orthogonal tag, not a status.
type LibraryStatus string

// Library statuses.
const (
	StatusNone        LibraryStatus = ""
	StatusWatching    LibraryStatus = "watching"
	StatusPlanToWatch LibraryStatus = "plan_to_watch"
	StatusCompleted   LibraryStatus = "completed"
	StatusOnHold      LibraryStatus = "on_hold"
	StatusDropped     LibraryStatus = "dropped"
	StatusAllCaughtUp LibraryStatus = "all_caught_up"
)

// IsManualPreset reports whether s is one of the statuses a user may pin
// manually. Manual presets survive automatic reclassification until watch
// activity invalidates them.
func (s LibraryStatus) IsManualPreset() bool {
	return s == StatusPlanToWatch || s == StatusOnHold || s == StatusDropped
}

// WatchEvent is a single entry in the append-oriented event log: one per
// episode watched or movie completed.
//
// WatchedAt is kept as the raw ISO-8601 string supplied by the client or an
// import so that malformed values survive round-trips through storage.
// The aggregation engine parses it and silently drops events whose timestamp
// does not parse; they are never allowed to crash the pipeline.
type WatchEvent struct {
	LogID         string      `json:"log_id"`
	MediaID       int         `json:"media_id"`
	MediaType     MediaType   `json:"media_type"`
	WatchedAt     string      `json:"watched_at"`
	SeasonNumber  int         `json:"season_number,omitempty"`
	EpisodeNumber int         `json:"episode_number,omitempty"`
	Source        WatchSource `json:"source"`
}

// Time parses the event timestamp. ok is false when the timestamp is
// malformed and the event must be excluded from aggregation.
func (e WatchEvent) Time() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, e.WatchedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PausedSession marks a live-watch session that the user paused part-way
// through a movie. Its presence classifies the movie as watching.
type PausedSession struct {
	MediaID   int       `json:"media_id"`
	MediaType MediaType `json:"media_type"`
	PausedAt  time.Time `json:"paused_at"`
	PositionS int       `json:"position_seconds"`
}

// TrackedItem is a membership record in a library list.
type TrackedItem struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	MediaType  MediaType  `json:"media_type"`
	PosterPath string     `json:"poster_path,omitempty"`
	GenreIDs   []int      `json:"genre_ids,omitempty"`
	AddedAt    *time.Time `json:"added_at,omitempty"`
}

// CustomList is a user-defined named collection of titles.
type CustomList struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Items     []TrackedItem `json:"items,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
