package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/habitflow/pkg/models"
)

// GoalStreakRepository handles database operations for the user goal streak.
// It implements goal_streak.Store.
type GoalStreakRepository struct{}

// NewGoalStreakRepository creates a new repository instance
func NewGoalStreakRepository() *GoalStreakRepository {
	return &GoalStreakRepository{}
}

// Latest returns the current streak record for the user, selected by max
// last_checked. Returns nil when no record exists yet.
func (r *GoalStreakRepository) Latest(ctx context.Context, userID string) (*models.GoalStreak, error) {
	var rec models.GoalStreak
	query := `
		SELECT id, user_id, current_streak, last_checked, created_at, updated_at
		FROM user_goal_streak
		WHERE user_id = $1
		ORDER BY last_checked DESC
		LIMIT 1
	`
	err := DB.GetContext(ctx, &rec, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal streak: %v", err)
	}
	return &rec, nil
}

// Insert creates the first streak record for a user.
func (r *GoalStreakRepository) Insert(ctx context.Context, rec *models.GoalStreak) error {
	rec.CreatedAt = nowStamp()
	rec.UpdatedAt = rec.CreatedAt

	if Type() == "sqlite" {
		result, err := DB.ExecContext(ctx, `
			INSERT INTO user_goal_streak (user_id, current_streak, last_checked, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			rec.UserID, rec.CurrentStreak, rec.LastChecked, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert goal streak: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %v", err)
		}
		rec.ID = id
		return nil
	}

	err := DB.QueryRowContext(ctx, `
		INSERT INTO user_goal_streak (user_id, current_streak, last_checked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		rec.UserID, rec.CurrentStreak, rec.LastChecked, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to insert goal streak: %v", err)
	}
	return nil
}

// Update writes the counter and last_checked back to the existing record.
func (r *GoalStreakRepository) Update(ctx context.Context, rec *models.GoalStreak) error {
	rec.UpdatedAt = nowStamp()
	result, err := DB.ExecContext(ctx, `
		UPDATE user_goal_streak SET
			current_streak = $1,
			last_checked = $2,
			updated_at = $3
		WHERE id = $4`,
		rec.CurrentStreak, rec.LastChecked, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal streak: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("goal streak record not found")
	}
	return nil
}
