// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/showlog/internal/models"
)

func findStatus(t *testing.T, statuses []models.AchievementStatus, id string) models.AchievementStatus {
	t.Helper()
	for _, s := range statuses {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("Achievement %q not found in catalog output", id)
	return models.AchievementStatus{}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Catalog() {
		if seen[a.ID] {
			t.Errorf("Duplicate achievement ID %q", a.ID)
		}
		seen[a.ID] = true
		if a.Check == nil {
			t.Errorf("Achievement %q has no check", a.ID)
		}
	}
}

func TestCompositeProgress(t *testing.T) {
	tests := []struct {
		name           string
		a, goalA       int
		b, goalB       int
		want           int
	}{
		{"halfway on both halves", 4, 8, 1, 2, 50},
		{"both complete", 8, 8, 2, 2, 100},
		{"overshoot is capped", 20, 8, 5, 2, 100},
		{"nothing yet", 0, 8, 0, 2, 0},
		{"one side only", 8, 8, 0, 2, 50},
		{"floor not round", 1, 8, 0, 2, 6}, // (0.125+0)/2*100 = 6.25 -> 6
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := compositeProgress(tc.a, tc.goalA, tc.b, tc.goalB); got != tc.want {
				t.Errorf("compositeProgress(%d/%d, %d/%d) = %d, want %d",
					tc.a, tc.goalA, tc.b, tc.goalB, got, tc.want)
			}
		})
	}
}

func TestEvaluateAchievementsMarathonDay(t *testing.T) {
	u := &models.UserData{}
	stats := &models.CalculatedStats{
		EpisodesWatchedToday: 4,
		MoviesWatchedToday:   1,
	}

	status := findStatus(t, EvaluateAchievements(u, stats), AchievementMarathonDay)
	assert.Equal(t, 50, status.Progress)
	assert.Equal(t, 100, status.Goal)
	assert.False(t, status.Unlocked)
}

func TestEvaluateAchievementsUnlocks(t *testing.T) {
	u := &models.UserData{
		Library: models.Library{
			PlanToWatch: make([]models.TrackedItem, 12),
		},
	}
	stats := &models.CalculatedStats{
		EpisodesWatchedToday: 1,
		LongestStreakDays:    7,
	}

	statuses := EvaluateAchievements(u, stats)
	require.Len(t, statuses, len(Catalog()))

	assert.True(t, findStatus(t, statuses, AchievementFirstSteps).Unlocked)
	assert.True(t, findStatus(t, statuses, AchievementStreak3).Unlocked)
	assert.True(t, findStatus(t, statuses, AchievementStreak7).Unlocked)
	assert.False(t, findStatus(t, statuses, AchievementStreak30).Unlocked)
	assert.True(t, findStatus(t, statuses, AchievementPlanner).Unlocked)
	assert.False(t, findStatus(t, statuses, AchievementDailyDose).Unlocked)
}

func TestEvaluateAchievementsRevocation(t *testing.T) {
	// Unlock state is derived, never stored: removing the underlying
	// activity re-locks the achievement on the next evaluation.
	u := &models.UserData{}

	unlocked := findStatus(t, EvaluateAchievements(u, &models.CalculatedStats{EpisodesWatchedToday: 3}), AchievementDailyDose)
	assert.True(t, unlocked.Unlocked)

	relocked := findStatus(t, EvaluateAchievements(u, &models.CalculatedStats{EpisodesWatchedToday: 0}), AchievementDailyDose)
	assert.False(t, relocked.Unlocked)
	assert.Equal(t, 0, relocked.Progress)
}
