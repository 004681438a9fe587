package domain

import (
	"sort"
	"time"
)

// TrailingWeeks is the window covered by the weekly volume series.
const TrailingWeeks = 12

// Summary aggregates a workout collection for the dashboard.
type Summary struct {
	TotalCount          int
	ThisWeekDurationMin int
	ThisWeekDistanceKM  float64
	CategoryBreakdown   map[Category]int
}

// WeekBucket holds the summed duration for one week, keyed by its Monday.
type WeekBucket struct {
	WeekStart   time.Time
	DurationMin int
}

// WeekStart returns the Monday at or before t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Summarize computes dashboard totals over an unordered workout collection.
// It is pure: now is injected and the input is never mutated. An empty
// collection yields a zero-valued summary, not an error.
func Summarize(workouts []Workout, now time.Time) Summary {
	summary := Summary{
		TotalCount:        len(workouts),
		CategoryBreakdown: make(map[Category]int),
	}

	weekStart := WeekStart(now)
	for _, w := range workouts {
		if !w.Date.Before(weekStart) {
			summary.ThisWeekDurationMin += w.DurationMin
			summary.ThisWeekDistanceKM += w.DistanceKM
		}
		summary.CategoryBreakdown[w.Category] += w.DurationMin
	}
	return summary
}

// WeeklySeries buckets workouts into Monday-keyed weeks and sums duration per
// bucket, optionally filtered to a single category (empty filter keeps all).
// Buckets whose week start falls more than TrailingWeeks before now are
// dropped, and the result is ordered ascending by week start. Weeks without
// workouts produce no bucket; consumers treat missing weeks as zero.
func WeeklySeries(workouts []Workout, filter Category, now time.Time) []WeekBucket {
	cutoff := now.UTC().AddDate(0, 0, -7*TrailingWeeks)

	totals := make(map[time.Time]int)
	for _, w := range workouts {
		if filter != "" && w.Category != filter {
			continue
		}
		start := WeekStart(w.Date)
		if start.Before(cutoff) {
			continue
		}
		totals[start] += w.DurationMin
	}

	series := make([]WeekBucket, 0, len(totals))
	for start, duration := range totals {
		series = append(series, WeekBucket{WeekStart: start, DurationMin: duration})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].WeekStart.Before(series[j].WeekStart)
	})
	return series
}
