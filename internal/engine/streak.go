// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

package engine

import (
	"sort"
	"time"
)

// dayOrdinal collapses an instant to a calendar-day ordinal in the instant's
// own location. Streaks compare calendar days, not 24-hour windows, so two
// events at 23:50 and 00:10 on adjacent days count as two active days.
func dayOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// activeDayOrdinals returns the distinct calendar-day ordinals on which at
// least one of the given instants falls, sorted ascending.
func activeDayOrdinals(times []time.Time) []int {
	seen := make(map[int]struct{}, len(times))
	for _, t := range times {
		seen[dayOrdinal(t)] = struct{}{}
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// longestStreak returns the length of the longest run of consecutive active
// days. days must be sorted ascending; duplicates are tolerated.
func longestStreak(days []int) int {
	if len(days) == 0 {
		return 0
	}
	longest := 0
	running := 1
	for i := 1; i < len(days); i++ {
		switch gap := days[i] - days[i-1]; {
		case gap == 1:
			running++
		case gap > 1:
			if running > longest {
				longest = running
			}
			running = 1
		}
		// gap == 0: duplicate day, no-op
	}
	// A streak ending at the last element must not be dropped.
	if running > longest {
		longest = running
	}
	return longest
}

// currentStreak returns the length of the streak ending today. The streak is
// only live if the most recent active day is today or yesterday; otherwise
// it is 0. Walks backward from the end counting consecutive 1-day gaps.
func currentStreak(days []int, now time.Time) int {
	if len(days) == 0 {
		return 0
	}
	today := dayOrdinal(now)
	last := days[len(days)-1]
	if today-last > 1 {
		return 0
	}
	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		gap := days[i] - days[i-1]
		if gap > 1 {
			break
		}
		if gap == 1 {
			streak++
		}
	}
	return streak
}
