package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/habitflow/pkg/models"
)

// HabitRepository handles database operations for habits
type HabitRepository struct{}

// NewHabitRepository creates a new repository instance
func NewHabitRepository() *HabitRepository {
	return &HabitRepository{}
}

// ListByUser returns all habits for a user, newest first.
func (r *HabitRepository) ListByUser(ctx context.Context, userID string) ([]models.Habit, error) {
	var habits []models.Habit
	query := `
		SELECT id, user_id, goal_id, title, created_at
		FROM habits
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	if err := DB.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list habits: %v", err)
	}
	return habits, nil
}

// GetByID returns one habit, scoped to the user.
func (r *HabitRepository) GetByID(ctx context.Context, userID string, id int64) (*models.Habit, error) {
	var habit models.Habit
	query := `
		SELECT id, user_id, goal_id, title, created_at
		FROM habits
		WHERE id = $1 AND user_id = $2
	`
	if err := DB.GetContext(ctx, &habit, query, id, userID); err != nil {
		return nil, fmt.Errorf("failed to get habit: %v", err)
	}
	return &habit, nil
}

// Create inserts a new habit. CreatedAt defaults to today when unset.
func (r *HabitRepository) Create(ctx context.Context, habit *models.Habit) error {
	if habit.CreatedAt == "" {
		habit.CreatedAt = time.Now().UTC().Format("2006-01-02")
	}

	if Type() == "sqlite" {
		result, err := DB.ExecContext(ctx,
			"INSERT INTO habits (user_id, goal_id, title, created_at) VALUES ($1, $2, $3, $4)",
			habit.UserID, habit.GoalID, habit.Title, habit.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create habit: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %v", err)
		}
		habit.ID = id
		return nil
	}

	err := DB.QueryRowContext(ctx,
		"INSERT INTO habits (user_id, goal_id, title, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		habit.UserID, habit.GoalID, habit.Title, habit.CreatedAt,
	).Scan(&habit.ID)
	if err != nil {
		return fmt.Errorf("failed to create habit: %v", err)
	}
	return nil
}

// UpdateTitle renames a habit, scoped to the user.
func (r *HabitRepository) UpdateTitle(ctx context.Context, userID string, id int64, title string) error {
	result, err := DB.ExecContext(ctx,
		"UPDATE habits SET title = $1 WHERE id = $2 AND user_id = $3",
		title, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("habit not found")
	}
	return nil
}

// Delete removes a habit and its completion rows. The two deletes are not
// wrapped in a transaction, matching the row-level CRUD the store exposes.
func (r *HabitRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := DB.ExecContext(ctx,
		"DELETE FROM habits WHERE id = $1 AND user_id = $2", id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("habit not found")
	}

	if _, err := DB.ExecContext(ctx,
		"DELETE FROM habit_completions WHERE habit_id = $1 AND user_id = $2", id, userID,
	); err != nil {
		return fmt.Errorf("failed to delete habit completions: %v", err)
	}
	return nil
}

// ReplaceForUser deletes every habit the user has and inserts the given
// titles fresh, tied to goalID. A failure between the delete and the inserts
// leaves the user with fewer habits until the next generation succeeds.
func (r *HabitRepository) ReplaceForUser(ctx context.Context, userID string, goalID int64, titles []string) ([]models.Habit, error) {
	if _, err := DB.ExecContext(ctx, "DELETE FROM habits WHERE user_id = $1", userID); err != nil {
		return nil, fmt.Errorf("failed to delete habits: %v", err)
	}
	if _, err := DB.ExecContext(ctx, "DELETE FROM habit_completions WHERE user_id = $1", userID); err != nil {
		return nil, fmt.Errorf("failed to delete habit completions: %v", err)
	}

	created := make([]models.Habit, 0, len(titles))
	for _, title := range titles {
		habit := models.Habit{UserID: userID, GoalID: goalID, Title: title}
		if err := r.Create(ctx, &habit); err != nil {
			return created, err
		}
		created = append(created, habit)
	}
	return created, nil
}

// CreationDays returns the creation day of every habit the user has,
// one entry per habit.
func (r *HabitRepository) CreationDays(ctx context.Context, userID string) ([]string, error) {
	var days []string
	if err := DB.SelectContext(ctx, &days,
		"SELECT created_at FROM habits WHERE user_id = $1", userID,
	); err != nil {
		return nil, fmt.Errorf("failed to get habit creation days: %v", err)
	}
	return days, nil
}

// UserIDs returns every user that currently has at least one habit.
// Used by the scheduled jobs to know who to evaluate.
func (r *HabitRepository) UserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := DB.SelectContext(ctx, &ids, "SELECT DISTINCT user_id FROM habits"); err != nil {
		return nil, fmt.Errorf("failed to list habit users: %v", err)
	}
	return ids, nil
}
