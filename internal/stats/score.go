package stats

import (
	"math"
	"time"
)

// ScorePolicy selects how the weekly score denominator is computed.
type ScorePolicy string

const (
	// PolicyCreationGated counts, for each elapsed day of the week, only the
	// habits that already existed on that day. A habit added on Wednesday does
	// not owe completions for Sunday through Tuesday.
	PolicyCreationGated ScorePolicy = "creation_gated"
	// PolicyFlatWeek expects every habit on every one of the 7 days regardless
	// of when it was created.
	PolicyFlatWeek ScorePolicy = "flat_week"
)

// ParseScorePolicy maps a config string to a policy, defaulting to creation-gated.
func ParseScorePolicy(s string) ScorePolicy {
	if ScorePolicy(s) == PolicyFlatWeek {
		return PolicyFlatWeek
	}
	return PolicyCreationGated
}

// WeeklyScore computes the percentage of expected habit completions achieved
// during the calendar week (Sunday-Saturday) containing ref, considering days
// up to and including ref.
//
// habitCreated holds one yyyy-MM-dd creation day per habit, completionDates
// the days of all completion rows in the week. The result is rounded and
// clamped to [0,100]; a user with no habits scores 0.
func WeeklyScore(habitCreated []string, completionDates []string, ref time.Time, policy ScorePolicy) int {
	weekStart := WeekStart(ref)
	weekEnd := WeekEnd(ref)
	end := startOfDay(ref)
	if end.After(weekEnd) {
		end = weekEnd
	}

	startStr := FormatDay(weekStart)
	endStr := FormatDay(end)
	days := DaysBetween(weekStart, end)

	var totalPossible int
	switch policy {
	case PolicyFlatWeek:
		// The flat policy spans the whole week on both sides of the ratio.
		endStr = FormatDay(weekEnd)
		totalPossible = len(habitCreated) * 7
	default:
		for _, day := range days {
			for _, created := range habitCreated {
				if created <= day {
					totalPossible++
				}
			}
		}
	}
	if totalPossible == 0 {
		return 0
	}

	var completed int
	for _, date := range completionDates {
		if date >= startStr && date <= endStr {
			completed++
		}
	}

	pct := int(math.Round(float64(completed) / float64(totalPossible) * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
