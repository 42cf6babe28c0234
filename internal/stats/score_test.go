package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 5 habits created before the week, completions Sun-Tue for all five and
// Wednesday for three, evaluated on Wednesday: 18 of 20 possible = 90%.
func TestWeeklyScoreMidWeek(t *testing.T) {
	created := []string{"2025-08-01", "2025-08-01", "2025-08-01", "2025-08-01", "2025-08-01"}

	var completions []string
	for _, d := range []string{"2025-08-17", "2025-08-18", "2025-08-19"} {
		for i := 0; i < 5; i++ {
			completions = append(completions, d)
		}
	}
	for i := 0; i < 3; i++ {
		completions = append(completions, "2025-08-20")
	}

	score := WeeklyScore(created, completions, day("2025-08-20"), PolicyCreationGated)
	assert.Equal(t, 90, score)
}

func TestWeeklyScoreNoHabits(t *testing.T) {
	score := WeeklyScore(nil, nil, day("2025-08-20"), PolicyCreationGated)
	assert.Equal(t, 0, score)

	score = WeeklyScore(nil, []string{"2025-08-18"}, day("2025-08-20"), PolicyFlatWeek)
	assert.Equal(t, 0, score)
}

// Duplicate completion rows cannot push the score past 100.
func TestWeeklyScoreClamped(t *testing.T) {
	created := []string{"2025-08-01"}
	completions := []string{
		"2025-08-17", "2025-08-17", "2025-08-17",
		"2025-08-18", "2025-08-18",
	}
	score := WeeklyScore(created, completions, day("2025-08-18"), PolicyCreationGated)
	assert.Equal(t, 100, score)
}

// A habit created mid-week only owes completions from its creation day on.
func TestWeeklyScoreCreationGated(t *testing.T) {
	created := []string{"2025-08-01", "2025-08-19"} // one old habit, one added Tuesday
	completions := []string{"2025-08-17", "2025-08-18", "2025-08-19", "2025-08-19"}

	// Denominator: Sun 1 + Mon 1 + Tue 2 = 4; numerator 4.
	score := WeeklyScore(created, completions, day("2025-08-19"), PolicyCreationGated)
	assert.Equal(t, 100, score)

	// Flat policy expects 2 habits x 7 days = 14 regardless of creation day.
	score = WeeklyScore(created, completions, day("2025-08-19"), PolicyFlatWeek)
	assert.Equal(t, 29, score) // round(4/14*100)
}

// Completions outside the week are ignored.
func TestWeeklyScoreIgnoresOtherWeeks(t *testing.T) {
	created := []string{"2025-08-01"}
	completions := []string{"2025-08-10", "2025-08-17", "2025-08-25"}

	score := WeeklyScore(created, completions, day("2025-08-17"), PolicyCreationGated)
	assert.Equal(t, 100, score) // only Sunday counts, and it was completed
}

// On Saturday the gated denominator covers the whole week.
func TestWeeklyScoreFullWeek(t *testing.T) {
	created := []string{"2025-08-01"}
	completions := DaysBetween(day("2025-08-17"), day("2025-08-22")) // 6 of 7 days

	score := WeeklyScore(created, completions, day("2025-08-23"), PolicyCreationGated)
	assert.Equal(t, 86, score) // round(6/7*100)
}

func TestParseScorePolicy(t *testing.T) {
	assert.Equal(t, PolicyCreationGated, ParseScorePolicy(""))
	assert.Equal(t, PolicyCreationGated, ParseScorePolicy("bogus"))
	assert.Equal(t, PolicyFlatWeek, ParseScorePolicy("flat_week"))
}
