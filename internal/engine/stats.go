// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/showlog/internal/models"
)

// Duration estimates are fixed per-unit constants, not looked up per title.
const (
	episodeMinutes = 45
	movieMinutes   = 100
)

// monthlyBuckets is the number of trailing months in the monthly activity
// histogram, ending at the current month.
const monthlyBuckets = 12

// Top-N truncation for genre histograms.
const (
	topGenreCount       = 3
	genreBreakdownCount = 5
)

// timedEvent pairs a watch event with its parsed timestamp localized to the
// aggregation clock's location.
type timedEvent struct {
	ev models.WatchEvent
	at time.Time
}

// ComputeStats aggregates against the wall clock. See ComputeStatsAt.
func ComputeStats(u *models.UserData) *models.CalculatedStats {
	return ComputeStatsAt(u, time.Now())
}

// ComputeStatsAt projects the full user snapshot into a CalculatedStats
// structure relative to now. It is pure and idempotent: calling it twice on
// the same input yields identical output, and every aggregate degrades to
// zero/empty on empty input.
//
// Two event views are used:
//
//   - valid history: events whose timestamp parses. Feeds lifetime totals,
//     month/year windows, genre distributions, and activity histograms.
//   - non-manual history: valid history minus bulk imports. Feeds today and
//     this-week counters and both streaks, so a one-time import can never
//     retroactively inflate a streak or trigger a same-day achievement.
func ComputeStatsAt(u *models.UserData, now time.Time) *models.CalculatedStats {
	stats := &models.CalculatedStats{
		TopGenres:          []models.GenreCount{},
		GenreBreakdown:     []models.GenreCount{},
		TopGenresThisMonth: []models.GenreCount{},
		MoodDistribution:   map[string]int{},
	}

	loc := now.Location()
	valid := validHistory(u.Events, loc)
	nonManual := nonManualHistory(valid)

	// Calendar-day boundaries in local time. "This week" is a rolling
	// 7x24h window; "this month" is a rolling calendar month via date
	// subtraction, not a fixed 30 days.
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := now.AddDate(0, -1, 0)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)

	for _, te := range valid {
		episode := te.ev.MediaType == models.MediaTypeTV
		if episode {
			stats.TotalEpisodesWatched++
		} else {
			stats.TotalMoviesWatched++
		}
		if !te.at.Before(monthStart) {
			if episode {
				stats.EpisodesWatchedThisMonth++
			} else {
				stats.MoviesWatchedThisMonth++
			}
		}
		if !te.at.Before(yearStart) {
			if episode {
				stats.EpisodesWatchedThisYear++
			} else {
				stats.MoviesWatchedThisYear++
			}
		}
		stats.WeeklyActivity[int(te.at.Weekday())]++
	}

	for _, te := range nonManual {
		episode := te.ev.MediaType == models.MediaTypeTV
		if !te.at.Before(startOfToday) {
			if episode {
				stats.EpisodesWatchedToday++
			} else {
				stats.MoviesWatchedToday++
			}
		}
		if !te.at.Before(weekStart) {
			if episode {
				stats.EpisodesWatchedThisWeek++
			} else {
				stats.MoviesWatchedThisWeek++
			}
		}
	}

	stats.HoursWatchedTotal = watchHours(stats.TotalEpisodesWatched, stats.TotalMoviesWatched)
	stats.HoursWatchedThisWeek = watchHours(stats.EpisodesWatchedThisWeek, stats.MoviesWatchedThisWeek)
	stats.HoursWatchedThisMonth = watchHours(stats.EpisodesWatchedThisMonth, stats.MoviesWatchedThisMonth)

	days := activeDayOrdinals(eventTimes(nonManual))
	stats.LongestStreakDays = longestStreak(days)
	stats.CurrentStreakDays = currentStreak(days, now)

	allTime, distinct := genreHistogram(u, valid)
	stats.TopGenres = topGenres(allTime, topGenreCount)
	stats.GenreBreakdown = topGenres(allTime, genreBreakdownCount)
	stats.DistinctGenreCount = distinct
	monthEvents := make([]timedEvent, 0, len(valid))
	for _, te := range valid {
		if !te.at.Before(monthStart) {
			monthEvents = append(monthEvents, te)
		}
	}
	thisMonth, _ := genreHistogram(u, monthEvents)
	stats.TopGenresThisMonth = topGenres(thisMonth, topGenreCount)

	stats.MonthlyActivity = monthlyActivity(valid, now)

	countJournals(u.Progress, stats)

	for _, rating := range u.Ratings {
		if rating > 0 {
			stats.RatedItemCount++
		}
	}
	stats.CustomListCount = len(u.CustomLists)
	stats.WatchingCount = len(u.Library.Watching)
	stats.PlanToWatchCount = len(u.Library.PlanToWatch)
	stats.CompletedCount = len(u.Library.Completed)
	stats.FavoriteCount = len(u.Library.Favorites)

	return stats
}

// validHistory filters the event log to events whose timestamp parses,
// localizing each instant. Malformed events are dropped silently; they must
// never crash the pipeline.
func validHistory(events []models.WatchEvent, loc *time.Location) []timedEvent {
	out := make([]timedEvent, 0, len(events))
	for _, ev := range events {
		t, ok := ev.Time()
		if !ok {
			continue
		}
		out = append(out, timedEvent{ev: ev, at: t.In(loc)})
	}
	return out
}

// nonManualHistory removes bulk-import events from valid history.
func nonManualHistory(valid []timedEvent) []timedEvent {
	out := make([]timedEvent, 0, len(valid))
	for _, te := range valid {
		if te.ev.Source == models.SourceBulkImport {
			continue
		}
		out = append(out, te)
	}
	return out
}

func eventTimes(events []timedEvent) []time.Time {
	times := make([]time.Time, len(events))
	for i, te := range events {
		times[i] = te.at
	}
	return times
}

func watchHours(episodes, movies int) float64 {
	return float64(episodes*episodeMinutes+movies*movieMinutes) / 60.0
}

// genreHistogram resolves each event's title to a tracked item (watching,
// plan-to-watch, completed, favorites; first match wins) and counts every
// genre ID on the item. Titles with no resolvable genre metadata contribute
// nothing, silently. The returned slice preserves first-encounter order so
// that ties in the later sort stay stable. distinct is the number of genre
// IDs seen at least once.
func genreHistogram(u *models.UserData, events []timedEvent) ([]models.GenreCount, int) {
	counts := map[int]int{}
	order := []int{}
	for _, te := range events {
		item := u.FindTracked(te.ev.MediaID)
		if item == nil {
			continue
		}
		for _, genreID := range item.GenreIDs {
			if _, seen := counts[genreID]; !seen {
				order = append(order, genreID)
			}
			counts[genreID]++
		}
	}
	hist := make([]models.GenreCount, len(order))
	for i, genreID := range order {
		hist[i] = models.GenreCount{GenreID: genreID, Count: counts[genreID]}
	}
	return hist, len(order)
}

// topGenres sorts a histogram descending by count (stable, so ties keep
// first-encounter order) and truncates to n.
func topGenres(hist []models.GenreCount, n int) []models.GenreCount {
	sorted := make([]models.GenreCount, len(hist))
	copy(sorted, hist)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// monthlyActivity builds the trailing 12-month histogram ending at the
// current month. Each bucket counts all valid-history events whose month and
// year match, labeled "{MonShort} '{YY}".
func monthlyActivity(valid []timedEvent, now time.Time) []models.MonthlyBucket {
	type monthKey struct {
		year  int
		month time.Month
	}
	counts := map[monthKey]int{}
	for _, te := range valid {
		counts[monthKey{year: te.at.Year(), month: te.at.Month()}]++
	}

	buckets := make([]models.MonthlyBucket, 0, monthlyBuckets)
	for i := monthlyBuckets - 1; i >= 0; i-- {
		// Anchor to the first of the month before subtracting so that
		// AddDate never skips a short month.
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		buckets = append(buckets, models.MonthlyBucket{
			Label: fmt.Sprintf("%s '%02d", anchor.Format("Jan"), anchor.Year()%100),
			Count: counts[monthKey{year: anchor.Year(), month: anchor.Month()}],
		})
	}
	return buckets
}

// countJournals flattens every season/episode entry across every title and
// counts journal text and mood occurrences. Journal data lives in the
// progress store, not the event log.
func countJournals(store models.ProgressStore, stats *models.CalculatedStats) {
	for _, title := range store {
		for _, season := range title {
			for _, rec := range season {
				if rec.Journal == nil {
					continue
				}
				if rec.Journal.Text != "" {
					stats.JournalEntryCount++
				}
				if rec.Journal.Mood != "" {
					stats.MoodEntryCount++
					stats.MoodDistribution[rec.Journal.Mood]++
				}
			}
		}
	}
}
