package stats

import (
	"github.com/example/habitflow/pkg/models"
)

// NextWeekChange maps a weekly score to the automatic difficulty adjustment
// for the following week.
func NextWeekChange(score int) models.Difficulty {
	switch {
	case score >= 90:
		return models.DifficultyHarder
	case score >= 70:
		return models.DifficultySame
	default:
		return models.DifficultyEasier
	}
}

// EncouragementMessage returns the fixed message shown with a difficulty change.
func EncouragementMessage(d models.Difficulty) string {
	switch d {
	case models.DifficultyHarder:
		return "You're crushing it! Get ready for a bigger challenge next week 💪"
	case models.DifficultyEasier:
		return "It's okay to have a slower week. Next week will be a bit lighter 🌱"
	default:
		return "You're doing great! Keep the momentum going 🔥"
	}
}
