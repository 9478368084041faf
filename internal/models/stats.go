// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package models

// CalculatedStats is the flat aggregate snapshot produced by the stats
// engine. It is recomputed from scratch on demand and never persisted or
// partially updated.
//
// Counters derived from "non-manual" history (bulk imports excluded):
// today/this-week counts and both streaks. Everything else is computed from
// the full valid history.
type CalculatedStats struct {
	// Activity counts
	EpisodesWatchedToday     int `json:"episodes_watched_today"`
	MoviesWatchedToday       int `json:"movies_watched_today"`
	EpisodesWatchedThisWeek  int `json:"episodes_watched_this_week"`
	MoviesWatchedThisWeek    int `json:"movies_watched_this_week"`
	EpisodesWatchedThisMonth int `json:"episodes_watched_this_month"`
	MoviesWatchedThisMonth   int `json:"movies_watched_this_month"`
	EpisodesWatchedThisYear  int `json:"episodes_watched_this_year"`
	MoviesWatchedThisYear    int `json:"movies_watched_this_year"`
	TotalEpisodesWatched     int `json:"total_episodes_watched"`
	TotalMoviesWatched       int `json:"total_movies_watched"`

	// Streaks (calendar days with at least one non-manual event)
	CurrentStreakDays int `json:"current_streak_days"`
	LongestStreakDays int `json:"longest_streak_days"`

	// Hours estimates: 45 minutes per episode, 100 minutes per movie
	HoursWatchedTotal     float64 `json:"hours_watched_total"`
	HoursWatchedThisWeek  float64 `json:"hours_watched_this_week"`
	HoursWatchedThisMonth float64 `json:"hours_watched_this_month"`

	// Genre affinity
	TopGenres          []GenreCount `json:"top_genres"`            // top 3, all-time
	GenreBreakdown     []GenreCount `json:"genre_breakdown"`       // top 5, all-time
	TopGenresThisMonth []GenreCount `json:"top_genres_this_month"` // top 3, rolling month
	DistinctGenreCount int          `json:"distinct_genre_count"`

	// Activity histograms
	WeeklyActivity  [7]int          `json:"weekly_activity"` // indexed by day of week, 0=Sunday
	MonthlyActivity []MonthlyBucket `json:"monthly_activity"`

	// Journal and mood
	JournalEntryCount int            `json:"journal_entry_count"`
	MoodEntryCount    int            `json:"mood_entry_count"`
	MoodDistribution  map[string]int `json:"mood_distribution"`

	// Collection counts
	RatedItemCount   int `json:"rated_item_count"`
	CustomListCount  int `json:"custom_list_count"`
	WatchingCount    int `json:"watching_count"`
	PlanToWatchCount int `json:"plan_to_watch_count"`
	CompletedCount   int `json:"completed_count"`
	FavoriteCount    int `json:"favorite_count"`
}

// GenreCount is one bucket of a genre-ID histogram.
type GenreCount struct {
	GenreID int `json:"genre_id"`
	Count   int `json:"count"`
}

// MonthlyBucket is one bucket of the trailing 12-month activity histogram,
// labeled "{MonShort} '{YY}", e.g. "Sep '26".
type MonthlyBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AchievementStatus is the evaluated state of one achievement catalog entry.
// Unlocked is always re-derived from progress and goal, never stored, so it
// can never desync from the underlying watch data.
type AchievementStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Goal        int    `json:"goal"`
	Unlocked    bool   `json:"unlocked"`
}
