// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package models

// Library holds the named status lists plus the orthogonal favorites tag.
type Library struct {
	Watching    []TrackedItem `json:"watching"`
	PlanToWatch []TrackedItem `json:"plan_to_watch"`
	Completed   []TrackedItem `json:"completed"`
	OnHold      []TrackedItem `json:"on_hold"`
	Dropped     []TrackedItem `json:"dropped"`
	AllCaughtUp []TrackedItem `json:"all_caught_up"`
	Favorites   []TrackedItem `json:"favorites"`
}

// StatusList returns the list backing the given status, or nil for
// StatusNone and unknown statuses.
func (l *Library) StatusList(status LibraryStatus) []TrackedItem {
	switch status {
	case StatusWatching:
		return l.Watching
	case StatusPlanToWatch:
		return l.PlanToWatch
	case StatusCompleted:
		return l.Completed
	case StatusOnHold:
		return l.OnHold
	case StatusDropped:
		return l.Dropped
	case StatusAllCaughtUp:
		return l.AllCaughtUp
	default:
		return nil
	}
}

// UserData is the full snapshot the engine computes over. The persistence
// layer materializes it atomically before any aggregation pass so that the
// genre-resolution pass sees the same library lists the streak pass used.
type UserData struct {
	Events         []WatchEvent          `json:"events"`
	Progress       ProgressStore         `json:"progress"`
	Library        Library               `json:"library"`
	Ratings        map[int]int           `json:"ratings,omitempty"`
	CustomLists    []CustomList          `json:"custom_lists,omitempty"`
	ManualPresets  map[int]LibraryStatus `json:"manual_presets,omitempty"`
	PausedSessions []PausedSession       `json:"paused_sessions,omitempty"`
}

// FindTracked resolves a media ID to a TrackedItem by searching watching,
// plan-to-watch, completed, and favorites in that order. First match wins.
// Returns nil when the title is not tracked in any of those lists.
func (u *UserData) FindTracked(mediaID int) *TrackedItem {
	for _, list := range [][]TrackedItem{
		u.Library.Watching,
		u.Library.PlanToWatch,
		u.Library.Completed,
		u.Library.Favorites,
	} {
		for i := range list {
			if list[i].ID == mediaID {
				return &list[i]
			}
		}
	}
	return nil
}
