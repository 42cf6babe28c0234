package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/habitflow/pkg/models"
)

// CompletionRepository handles database operations for habit completions
type CompletionRepository struct{}

// NewCompletionRepository creates a new repository instance
func NewCompletionRepository() *CompletionRepository {
	return &CompletionRepository{}
}

// Toggle flips the completion of a habit for a day: the row is inserted when
// absent and deleted when present. Returns whether the habit ends up completed.
func (r *CompletionRepository) Toggle(ctx context.Context, userID string, habitID int64, date string) (bool, error) {
	var id int64
	err := DB.QueryRowContext(ctx,
		"SELECT id FROM habit_completions WHERE habit_id = $1 AND user_id = $2 AND date = $3",
		habitID, userID, date,
	).Scan(&id)

	if err == nil {
		if _, err := DB.ExecContext(ctx, "DELETE FROM habit_completions WHERE id = $1", id); err != nil {
			return true, fmt.Errorf("failed to delete completion: %v", err)
		}
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check completion: %v", err)
	}

	if _, err := DB.ExecContext(ctx,
		"INSERT INTO habit_completions (habit_id, user_id, date) VALUES ($1, $2, $3)",
		habitID, userID, date,
	); err != nil {
		return false, fmt.Errorf("failed to insert completion: %v", err)
	}
	return true, nil
}

// ListByUserRange returns all completions for a user with date in [start, end].
func (r *CompletionRepository) ListByUserRange(ctx context.Context, userID, start, end string) ([]models.Completion, error) {
	var completions []models.Completion
	query := `
		SELECT id, habit_id, user_id, date
		FROM habit_completions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`
	if err := DB.SelectContext(ctx, &completions, query, userID, start, end); err != nil {
		return nil, fmt.Errorf("failed to list completions: %v", err)
	}
	return completions, nil
}

// DatesForHabit returns every completion day recorded for one habit.
func (r *CompletionRepository) DatesForHabit(ctx context.Context, userID string, habitID int64) ([]string, error) {
	var dates []string
	query := `
		SELECT date FROM habit_completions
		WHERE habit_id = $1 AND user_id = $2
		ORDER BY date ASC
	`
	if err := DB.SelectContext(ctx, &dates, query, habitID, userID); err != nil {
		return nil, fmt.Errorf("failed to get completion dates: %v", err)
	}
	return dates, nil
}

// CountForDay returns how many habits the user completed on the given day.
func (r *CompletionRepository) CountForDay(ctx context.Context, userID, date string) (int, error) {
	var count int
	if err := DB.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM habit_completions WHERE user_id = $1 AND date = $2",
		userID, date,
	); err != nil {
		return 0, fmt.Errorf("failed to count completions: %v", err)
	}
	return count, nil
}
