package stats

import (
	"math"

	"github.com/example/habitflow/pkg/models"
)

// WeeklyNumbers are the figures shown in the weekly report.
type WeeklyNumbers struct {
	CompletionRate   int `json:"completion_rate"`
	TotalCompletions int `json:"total_completions"`
	MaxPossible      int `json:"max_possible"`
	BiggestStreak    int `json:"biggest_streak"`
}

// ComputeWeeklyNumbers aggregates habits and completions over the given week
// days (yyyy-MM-dd, in order). BiggestStreak is the longest run of consecutive
// completed days any single habit managed inside the week.
func ComputeWeeklyNumbers(habits []models.Habit, completions []models.Completion, weekDays []string) WeeklyNumbers {
	done := make(map[int64]map[string]bool, len(habits))
	for _, c := range completions {
		if done[c.HabitID] == nil {
			done[c.HabitID] = make(map[string]bool)
		}
		done[c.HabitID][c.Date] = true
	}

	total := len(habits) * len(weekDays)
	completed := 0
	biggest := 0

	for _, habit := range habits {
		streak := 0
		for _, day := range weekDays {
			if done[habit.ID][day] {
				completed++
				streak++
			} else {
				streak = 0
			}
			if streak > biggest {
				biggest = streak
			}
		}
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return WeeklyNumbers{
		CompletionRate:   rate,
		TotalCompletions: completed,
		MaxPossible:      total,
		BiggestStreak:    biggest,
	}
}
