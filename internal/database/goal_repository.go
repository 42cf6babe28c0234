package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/habitflow/pkg/models"
)

// GoalRepository handles database operations for goals
type GoalRepository struct{}

// NewGoalRepository creates a new repository instance
func NewGoalRepository() *GoalRepository {
	return &GoalRepository{}
}

// Create inserts a new goal.
func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	if goal.CreatedAt == "" {
		goal.CreatedAt = nowStamp()
	}

	if Type() == "sqlite" {
		result, err := DB.ExecContext(ctx, `
			INSERT INTO goals (user_id, goal_title, description, timeline, motivator, future_message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			goal.UserID, goal.GoalTitle, goal.Description, goal.Timeline, goal.Motivator, goal.FutureMessage, goal.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create goal: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %v", err)
		}
		goal.ID = id
		return nil
	}

	err := DB.QueryRowContext(ctx, `
		INSERT INTO goals (user_id, goal_title, description, timeline, motivator, future_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		goal.UserID, goal.GoalTitle, goal.Description, goal.Timeline, goal.Motivator, goal.FutureMessage, goal.CreatedAt,
	).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("failed to create goal: %v", err)
	}
	return nil
}

// LatestByUser returns the user's active goal: the most recent row by
// created_at. Returns nil when the user has no goal yet.
func (r *GoalRepository) LatestByUser(ctx context.Context, userID string) (*models.Goal, error) {
	var goal models.Goal
	query := `
		SELECT id, user_id, goal_title, description, timeline, motivator, future_message, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	err := DB.GetContext(ctx, &goal, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %v", err)
	}
	return &goal, nil
}

// Update modifies an existing goal, scoped to the user.
func (r *GoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	result, err := DB.ExecContext(ctx, `
		UPDATE goals SET
			goal_title = $1,
			description = $2,
			timeline = $3,
			motivator = $4,
			future_message = $5
		WHERE id = $6 AND user_id = $7`,
		goal.GoalTitle, goal.Description, goal.Timeline, goal.Motivator, goal.FutureMessage, goal.ID, goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("goal not found")
	}
	return nil
}
