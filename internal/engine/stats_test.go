// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package engine

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/showlog/internal/models"
)

// statsNow pins the aggregation clock: a Tuesday at 15:00 UTC.
var statsNow = time.Date(2026, time.September, 1, 15, 0, 0, 0, time.UTC)

func tvEvent(id int, at time.Time, source models.WatchSource) models.WatchEvent {
	return models.WatchEvent{
		LogID:     fmt.Sprintf("log-%d-%d", id, at.Unix()),
		MediaID:   id,
		MediaType: models.MediaTypeTV,
		WatchedAt: at.Format(time.RFC3339),
		Source:    source,
	}
}

func movieEventAt(id int, at time.Time, source models.WatchSource) models.WatchEvent {
	ev := tvEvent(id, at, source)
	ev.MediaType = models.MediaTypeMovie
	return ev
}

func TestComputeStatsZeroState(t *testing.T) {
	stats := ComputeStatsAt(&models.UserData{}, statsNow)

	if stats.TotalEpisodesWatched != 0 || stats.TotalMoviesWatched != 0 {
		t.Errorf("Expected zero totals, got %d episodes / %d movies",
			stats.TotalEpisodesWatched, stats.TotalMoviesWatched)
	}
	if stats.LongestStreakDays != 0 || stats.CurrentStreakDays != 0 {
		t.Errorf("Expected zero streaks, got longest=%d current=%d",
			stats.LongestStreakDays, stats.CurrentStreakDays)
	}
	if stats.HoursWatchedTotal != 0 {
		t.Errorf("Expected zero hours, got %f", stats.HoursWatchedTotal)
	}
	for day, count := range stats.WeeklyActivity {
		if count != 0 {
			t.Errorf("Expected empty weekly histogram, day %d has %d", day, count)
		}
	}
	if len(stats.MonthlyActivity) != monthlyBuckets {
		t.Fatalf("Expected %d monthly buckets, got %d", monthlyBuckets, len(stats.MonthlyActivity))
	}
	for _, bucket := range stats.MonthlyActivity {
		if bucket.Count != 0 {
			t.Errorf("Expected empty monthly bucket %q, got %d", bucket.Label, bucket.Count)
		}
	}
	if len(stats.TopGenres) != 0 || len(stats.GenreBreakdown) != 0 {
		t.Error("Expected empty genre histograms")
	}
	if stats.JournalEntryCount != 0 || stats.MoodEntryCount != 0 {
		t.Error("Expected zero journal counts")
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	u := &models.UserData{
		Events: []models.WatchEvent{
			tvEvent(1, statsNow.Add(-2*time.Hour), models.SourceOrganic),
			tvEvent(1, statsNow.Add(-26*time.Hour), models.SourceOrganic),
			movieEventAt(2, statsNow.Add(-3*24*time.Hour), models.SourceOrganic),
		},
		Library: models.Library{
			Watching: []models.TrackedItem{
				{ID: 1, MediaType: models.MediaTypeTV, GenreIDs: []int{18}},
			},
		},
	}

	first := ComputeStatsAt(u, statsNow)
	second := ComputeStatsAt(u, statsNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output on repeated aggregation:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeStatsMalformedTimestampsDropped(t *testing.T) {
	u := &models.UserData{
		Events: []models.WatchEvent{
			{LogID: "bad-1", MediaID: 1, MediaType: models.MediaTypeTV, WatchedAt: "not-a-timestamp", Source: models.SourceOrganic},
			{LogID: "bad-2", MediaID: 1, MediaType: models.MediaTypeTV, WatchedAt: "", Source: models.SourceOrganic},
			tvEvent(1, statsNow.Add(-time.Hour), models.SourceOrganic),
		},
	}

	stats := ComputeStatsAt(u, statsNow)
	if stats.TotalEpisodesWatched != 1 {
		t.Errorf("Expected malformed events dropped, total=%d", stats.TotalEpisodesWatched)
	}
}

func TestComputeStatsWindows(t *testing.T) {
	startOfToday := time.Date(statsNow.Year(), statsNow.Month(), statsNow.Day(), 0, 0, 0, 0, time.UTC)
	u := &models.UserData{
		Events: []models.WatchEvent{
			// Today: one episode, one movie.
			tvEvent(1, startOfToday.Add(9*time.Hour), models.SourceOrganic),
			movieEventAt(2, startOfToday.Add(10*time.Hour), models.SourceOrganic),
			// Yesterday evening: inside the rolling week, outside today.
			tvEvent(1, startOfToday.Add(-4*time.Hour), models.SourceOrganic),
			// 10 days ago: inside the rolling month, outside the week.
			tvEvent(1, statsNow.AddDate(0, 0, -10), models.SourceOrganic),
			// In March this year: inside the year, outside the month.
			tvEvent(1, time.Date(statsNow.Year(), time.March, 5, 20, 0, 0, 0, time.UTC), models.SourceOrganic),
			// Two years ago: lifetime only.
			tvEvent(1, statsNow.AddDate(-2, 0, 0), models.SourceOrganic),
		},
	}

	stats := ComputeStatsAt(u, statsNow)

	if stats.EpisodesWatchedToday != 1 || stats.MoviesWatchedToday != 1 {
		t.Errorf("Today: got %d episodes / %d movies", stats.EpisodesWatchedToday, stats.MoviesWatchedToday)
	}
	if stats.EpisodesWatchedThisWeek != 2 || stats.MoviesWatchedThisWeek != 1 {
		t.Errorf("Week: got %d episodes / %d movies", stats.EpisodesWatchedThisWeek, stats.MoviesWatchedThisWeek)
	}
	if stats.EpisodesWatchedThisMonth != 3 || stats.MoviesWatchedThisMonth != 1 {
		t.Errorf("Month: got %d episodes / %d movies", stats.EpisodesWatchedThisMonth, stats.MoviesWatchedThisMonth)
	}
	if stats.EpisodesWatchedThisYear != 4 || stats.MoviesWatchedThisYear != 1 {
		t.Errorf("Year: got %d episodes / %d movies", stats.EpisodesWatchedThisYear, stats.MoviesWatchedThisYear)
	}
	if stats.TotalEpisodesWatched != 5 || stats.TotalMoviesWatched != 1 {
		t.Errorf("Totals: got %d episodes / %d movies", stats.TotalEpisodesWatched, stats.TotalMoviesWatched)
	}

	// 5 episodes * 45min + 1 movie * 100min = 325min.
	wantTotal := 325.0 / 60.0
	if stats.HoursWatchedTotal != wantTotal {
		t.Errorf("Expected %.4f total hours, got %.4f", wantTotal, stats.HoursWatchedTotal)
	}
}

func TestComputeStatsManualHistoryExclusion(t *testing.T) {
	u := &models.UserData{
		Events: []models.WatchEvent{
			tvEvent(1, statsNow.Add(-time.Hour), models.SourceBulkImport),
			tvEvent(1, statsNow.Add(-25*time.Hour), models.SourceBulkImport),
			tvEvent(1, statsNow.Add(-49*time.Hour), models.SourceBulkImport),
		},
	}

	stats := ComputeStatsAt(u, statsNow)

	if stats.TotalEpisodesWatched != 3 {
		t.Errorf("Imported events must count toward lifetime totals, got %d", stats.TotalEpisodesWatched)
	}
	if stats.EpisodesWatchedToday != 0 {
		t.Errorf("Imported events must not count toward today, got %d", stats.EpisodesWatchedToday)
	}
	if stats.EpisodesWatchedThisWeek != 0 {
		t.Errorf("Imported events must not count toward the week, got %d", stats.EpisodesWatchedThisWeek)
	}
	if stats.LongestStreakDays != 0 || stats.CurrentStreakDays != 0 {
		t.Errorf("Imported events must not build streaks, got longest=%d current=%d",
			stats.LongestStreakDays, stats.CurrentStreakDays)
	}
}

func TestComputeStatsStreaks(t *testing.T) {
	// Active on D-6..D-4 (three days), gap, then D-1 and D (today).
	u := &models.UserData{
		Events: []models.WatchEvent{
			tvEvent(1, statsNow.AddDate(0, 0, -6), models.SourceOrganic),
			tvEvent(1, statsNow.AddDate(0, 0, -5), models.SourceOrganic),
			tvEvent(1, statsNow.AddDate(0, 0, -4), models.SourceOrganic),
			tvEvent(1, statsNow.AddDate(0, 0, -1), models.SourceOrganic),
			tvEvent(1, statsNow, models.SourceOrganic),
		},
	}

	stats := ComputeStatsAt(u, statsNow)
	if stats.LongestStreakDays != 3 {
		t.Errorf("Expected longest streak 3, got %d", stats.LongestStreakDays)
	}
	if stats.CurrentStreakDays != 2 {
		t.Errorf("Expected current streak 2, got %d", stats.CurrentStreakDays)
	}
}

func TestComputeStatsGenres(t *testing.T) {
	const (
		genreDrama  = 18
		genreComedy = 35
	)
	u := &models.UserData{
		Events: []models.WatchEvent{
			tvEvent(1, statsNow.Add(-time.Hour), models.SourceOrganic),
			tvEvent(2, statsNow.Add(-2*time.Hour), models.SourceOrganic),
			tvEvent(3, statsNow.Add(-3*time.Hour), models.SourceOrganic),
			tvEvent(99, statsNow.Add(-4*time.Hour), models.SourceOrganic), // untracked, no genre contribution
		},
		Library: models.Library{
			Watching: []models.TrackedItem{
				{ID: 1, MediaType: models.MediaTypeTV, GenreIDs: []int{genreDrama}},
				{ID: 2, MediaType: models.MediaTypeTV, GenreIDs: []int{genreDrama}},
			},
			Completed: []models.TrackedItem{
				{ID: 3, MediaType: models.MediaTypeTV, GenreIDs: []int{genreComedy}},
			},
		},
	}

	stats := ComputeStatsAt(u, statsNow)

	if len(stats.TopGenres) != 2 {
		t.Fatalf("Expected 2 genres, got %d", len(stats.TopGenres))
	}
	if stats.TopGenres[0].GenreID != genreDrama || stats.TopGenres[0].Count != 2 {
		t.Errorf("Expected Drama on top with count 2, got %+v", stats.TopGenres[0])
	}
	if stats.TopGenres[1].GenreID != genreComedy || stats.TopGenres[1].Count != 1 {
		t.Errorf("Expected Comedy second with count 1, got %+v", stats.TopGenres[1])
	}
	if stats.DistinctGenreCount != 2 {
		t.Errorf("Expected 2 distinct genres, got %d", stats.DistinctGenreCount)
	}
}

func TestComputeStatsGenreTieStability(t *testing.T) {
	// Both genres end at count 1; first-encountered wins the tie.
	u := &models.UserData{
		Events: []models.WatchEvent{
			tvEvent(1, statsNow.Add(-time.Hour), models.SourceOrganic),
			tvEvent(2, statsNow.Add(-2*time.Hour), models.SourceOrganic),
		},
		Library: models.Library{
			Watching: []models.TrackedItem{
				{ID: 1, MediaType: models.MediaTypeTV, GenreIDs: []int{80}},
				{ID: 2, MediaType: models.MediaTypeTV, GenreIDs: []int{16}},
			},
		},
	}

	stats := ComputeStatsAt(u, statsNow)
	if stats.TopGenres[0].GenreID != 80 {
		t.Errorf("Expected first-encountered genre 80 to win the tie, got %d", stats.TopGenres[0].GenreID)
	}
}

func TestComputeStatsHistograms(t *testing.T) {
	// statsNow is a Tuesday (weekday 2).
	u := &models.UserData{
		Events: []models.WatchEvent{
			tvEvent(1, statsNow, models.SourceOrganic),
			tvEvent(1, statsNow.AddDate(0, 0, -7), models.SourceOrganic), // also Tuesday
			tvEvent(1, statsNow.AddDate(0, 0, -2), models.SourceOrganic), // Sunday
		},
	}

	stats := ComputeStatsAt(u, statsNow)

	if stats.WeeklyActivity[int(time.Tuesday)] != 2 {
		t.Errorf("Expected 2 Tuesday events, got %d", stats.WeeklyActivity[int(time.Tuesday)])
	}
	if stats.WeeklyActivity[int(time.Sunday)] != 1 {
		t.Errorf("Expected 1 Sunday event, got %d", stats.WeeklyActivity[int(time.Sunday)])
	}

	if len(stats.MonthlyActivity) != monthlyBuckets {
		t.Fatalf("Expected %d monthly buckets, got %d", monthlyBuckets, len(stats.MonthlyActivity))
	}
	last := stats.MonthlyActivity[monthlyBuckets-1]
	if last.Label != "Sep '26" {
		t.Errorf("Expected final bucket labeled \"Sep '26\", got %q", last.Label)
	}
	if last.Count != 1 {
		t.Errorf("Expected 1 event in the current month bucket, got %d", last.Count)
	}
	august := stats.MonthlyActivity[monthlyBuckets-2]
	if august.Label != "Aug '26" || august.Count != 2 {
		t.Errorf("Expected 2 events in \"Aug '26\", got %d in %q", august.Count, august.Label)
	}
	first := stats.MonthlyActivity[0]
	if first.Label != "Oct '25" {
		t.Errorf("Expected oldest bucket labeled \"Oct '25\", got %q", first.Label)
	}
}

func TestComputeStatsJournalsAndMoods(t *testing.T) {
	progress := models.ProgressStore{
		1: models.TitleProgress{},
		2: models.TitleProgress{},
	}
	progress[1].Set(1, 1, models.EpisodeProgress{
		Status:  models.WatchStateWatched,
		Journal: &models.JournalEntry{Text: "great pilot", Mood: "excited", Timestamp: statsNow},
	})
	progress[1].Set(1, 2, models.EpisodeProgress{
		Status:  models.WatchStateWatched,
		Journal: &models.JournalEntry{Mood: "excited", Timestamp: statsNow},
	})
	progress[2].Set(1, 1, models.EpisodeProgress{
		Status:  models.WatchStateWatched,
		Journal: &models.JournalEntry{Text: "slow start", Mood: "bored", Timestamp: statsNow},
	})

	stats := ComputeStatsAt(&models.UserData{Progress: progress}, statsNow)

	if stats.JournalEntryCount != 2 {
		t.Errorf("Expected 2 journal entries, got %d", stats.JournalEntryCount)
	}
	if stats.MoodEntryCount != 3 {
		t.Errorf("Expected 3 mood entries, got %d", stats.MoodEntryCount)
	}
	if stats.MoodDistribution["excited"] != 2 || stats.MoodDistribution["bored"] != 1 {
		t.Errorf("Unexpected mood distribution: %v", stats.MoodDistribution)
	}
}

func TestComputeStatsCollectionCounts(t *testing.T) {
	u := &models.UserData{
		Ratings: map[int]int{1: 8, 2: 6, 3: 0},
		CustomLists: []models.CustomList{
			{ID: "a", Name: "comfort shows"},
			{ID: "b", Name: "oscar bait"},
		},
		Library: models.Library{
			PlanToWatch: []models.TrackedItem{{ID: 4}, {ID: 5}},
			Favorites:   []models.TrackedItem{{ID: 1}},
		},
	}

	stats := ComputeStatsAt(u, statsNow)
	if stats.RatedItemCount != 2 {
		t.Errorf("Expected 2 rated items (zero rating excluded), got %d", stats.RatedItemCount)
	}
	if stats.CustomListCount != 2 {
		t.Errorf("Expected 2 custom lists, got %d", stats.CustomListCount)
	}
	if stats.PlanToWatchCount != 2 || stats.FavoriteCount != 1 {
		t.Errorf("Unexpected list counts: %+v", stats)
	}
}
