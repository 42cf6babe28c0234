package models

// Difficulty is the adjustment applied to next week's habit plan.
// Stored as text in weekly_difficulty_overrides.override and weekly_stats.difficulty.
type Difficulty string

const (
	DifficultyEasier Difficulty = "easier"
	DifficultySame   Difficulty = "same"
	DifficultyHarder Difficulty = "harder"
)

// Valid reports whether d is one of the three known difficulty values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasier, DifficultySame, DifficultyHarder:
		return true
	}
	return false
}
