// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package engine

import (
	"math"

	"github.com/tomtom215/showlog/internal/models"
)

// Achievement is one entry of the static catalog: identity plus a pure check
// that maps (user data, stats) to a progress/goal pair. Unlock state is never
// stored; it is re-derived on every evaluation, so revoking watch history
// correctly re-locks an achievement.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Check       func(u *models.UserData, s *models.CalculatedStats) (progress, goal int)
}

// Achievement catalog IDs.
const (
	AchievementFirstSteps    = "first_steps"
	AchievementDailyDose     = "daily_dose"
	AchievementBingeSession  = "binge_session"
	AchievementMovieNight    = "movie_night"
	AchievementDoubleFeature = "double_feature"
	AchievementMarathonDay   = "marathon_day"
	AchievementSteadyWeek    = "steady_week"
	AchievementBalancedWeek  = "balanced_week"
	AchievementStreak3       = "streak_3"
	AchievementStreak7       = "streak_7"
	AchievementStreak30      = "streak_30"
	AchievementJournaler     = "journaler"
	AchievementMoodTracker   = "mood_tracker"
	AchievementCritic        = "critic"
	AchievementExplorer      = "explorer"
	AchievementPlanner       = "planner"
	AchievementCurator       = "curator"
	AchievementCompletionist = "completionist"
)

// compositeGoal is the goal for composite achievements: two normalized
// sub-progress ratios averaged and scaled to a 0-100 integer.
const compositeGoal = 100

// compositeProgress averages two capped sub-progress ratios and floors the
// result on the 0-100 scale. An achievement that names two independent
// quantities ("watch 8 episodes and 2 movies") uses exactly this shape.
func compositeProgress(a, goalA, b, goalB int) int {
	ra := math.Min(float64(a)/float64(goalA), 1)
	rb := math.Min(float64(b)/float64(goalB), 1)
	return int(math.Floor((ra + rb) / 2 * 100))
}

// Catalog returns the fixed achievement catalog. Entries group into per-day
// goals, per-week goals, streak goals, engagement goals, and
// collection/variety goals. The catalog is data, not state.
func Catalog() []Achievement {
	return []Achievement{
		// Per-day goals. Daily counters come from non-manual history, so a
		// bulk import can never trigger a same-day achievement.
		{
			ID: AchievementFirstSteps, Name: "First Steps",
			Description: "Watch an episode today",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.EpisodesWatchedToday, 1
			},
		},
		{
			ID: AchievementDailyDose, Name: "Daily Dose",
			Description: "Watch 3 episodes in one day",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.EpisodesWatchedToday, 3
			},
		},
		{
			ID: AchievementBingeSession, Name: "Binge Session",
			Description: "Watch 6 episodes in one day",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.EpisodesWatchedToday, 6
			},
		},
		{
			ID: AchievementMovieNight, Name: "Movie Night",
			Description: "Watch a movie today",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.MoviesWatchedToday, 1
			},
		},
		{
			ID: AchievementDoubleFeature, Name: "Double Feature",
			Description: "Watch 2 movies in one day",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.MoviesWatchedToday, 2
			},
		},
		{
			ID: AchievementMarathonDay, Name: "Marathon Day",
			Description: "Watch 8 episodes and 2 movies in one day",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return compositeProgress(s.EpisodesWatchedToday, 8, s.MoviesWatchedToday, 2), compositeGoal
			},
		},

		// Per-week goals
		{
			ID: AchievementSteadyWeek, Name: "Steady Week",
			Description: "Watch 10 episodes this week",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.EpisodesWatchedThisWeek, 10
			},
		},
		{
			ID: AchievementBalancedWeek, Name: "Balanced Week",
			Description: "Watch 15 episodes and 3 movies this week",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return compositeProgress(s.EpisodesWatchedThisWeek, 15, s.MoviesWatchedThisWeek, 3), compositeGoal
			},
		},

		// Streak and consistency goals
		{
			ID: AchievementStreak3, Name: "Warming Up",
			Description: "Keep a 3-day watch streak",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.LongestStreakDays, 3
			},
		},
		{
			ID: AchievementStreak7, Name: "Full Week",
			Description: "Keep a 7-day watch streak",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.LongestStreakDays, 7
			},
		},
		{
			ID: AchievementStreak30, Name: "Habitual",
			Description: "Keep a 30-day watch streak",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.LongestStreakDays, 30
			},
		},

		// Engagement goals
		{
			ID: AchievementJournaler, Name: "Journaler",
			Description: "Write 10 episode journal entries",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.JournalEntryCount, 10
			},
		},
		{
			ID: AchievementMoodTracker, Name: "Mood Tracker",
			Description: "Log a mood on 25 episodes",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.MoodEntryCount, 25
			},
		},
		{
			ID: AchievementCritic, Name: "Critic",
			Description: "Rate 10 titles",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.RatedItemCount, 10
			},
		},

		// Collection and variety goals
		{
			ID: AchievementExplorer, Name: "Explorer",
			Description: "Watch titles across 5 different genres",
			Check: func(_ *models.UserData, s *models.CalculatedStats) (int, int) {
				return s.DistinctGenreCount, 5
			},
		},
		{
			ID: AchievementPlanner, Name: "Planner",
			Description: "Keep 10 titles on your plan-to-watch list",
			Check: func(u *models.UserData, _ *models.CalculatedStats) (int, int) {
				return len(u.Library.PlanToWatch), 10
			},
		},
		{
			ID: AchievementCurator, Name: "Curator",
			Description: "Create 3 custom lists",
			Check: func(u *models.UserData, _ *models.CalculatedStats) (int, int) {
				return len(u.CustomLists), 3
			},
		},
		{
			ID: AchievementCompletionist, Name: "Completionist",
			Description: "Complete 10 titles",
			Check: func(u *models.UserData, _ *models.CalculatedStats) (int, int) {
				return len(u.Library.Completed), 10
			},
		},
	}
}

// EvaluateAchievements runs every catalog check against the snapshot and
// stats, deriving unlocked = progress >= goal. Pure read: nothing is written
// back anywhere.
func EvaluateAchievements(u *models.UserData, stats *models.CalculatedStats) []models.AchievementStatus {
	catalog := Catalog()
	out := make([]models.AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		progress, goal := a.Check(u, stats)
		out = append(out, models.AchievementStatus{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Progress:    progress,
			Goal:        goal,
			Unlocked:    progress >= goal,
		})
	}
	return out
}
