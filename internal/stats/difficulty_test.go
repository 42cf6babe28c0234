package stats

import (
	"testing"

	"github.com/example/habitflow/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNextWeekChange(t *testing.T) {
	cases := []struct {
		score int
		want  models.Difficulty
	}{
		{100, models.DifficultyHarder},
		{95, models.DifficultyHarder},
		{90, models.DifficultyHarder},
		{89, models.DifficultySame},
		{80, models.DifficultySame},
		{70, models.DifficultySame},
		{69, models.DifficultyEasier},
		{50, models.DifficultyEasier},
		{0, models.DifficultyEasier},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NextWeekChange(c.score), "score %d", c.score)
	}
}

func TestEncouragementMessage(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range []models.Difficulty{models.DifficultyEasier, models.DifficultySame, models.DifficultyHarder} {
		msg := EncouragementMessage(d)
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "messages should differ per difficulty")
		seen[msg] = true
	}
}
