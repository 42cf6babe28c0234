package stats

import (
	"time"
)

// CurrentStreak counts consecutive completed days for one habit, walking
// backward from today. Today being incomplete does not break the streak (the
// day is still in progress); the streak breaks at the first missing day
// strictly before today.
func CurrentStreak(completedDates []string, today time.Time) int {
	completed := make(map[string]bool, len(completedDates))
	for _, d := range completedDates {
		completed[d] = true
	}

	day := startOfDay(today)
	streak := 0
	if completed[FormatDay(day)] {
		streak++
	}
	// Walk backward from yesterday until the first gap.
	for day = day.AddDate(0, 0, -1); completed[FormatDay(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
