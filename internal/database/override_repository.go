package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/habitflow/pkg/models"
)

// OverrideRepository handles database operations for weekly difficulty overrides
type OverrideRepository struct{}

// NewOverrideRepository creates a new repository instance
func NewOverrideRepository() *OverrideRepository {
	return &OverrideRepository{}
}

// Upsert stores the user's difficulty choice for a week. Saving twice for the
// same week replaces the previous choice.
func (r *OverrideRepository) Upsert(ctx context.Context, o *models.DifficultyOverride) error {
	if Type() == "sqlite" {
		// SQLite doesn't support ON CONFLICT together with RETURNING here,
		// so check for an existing row first.
		var existingID int64
		err := DB.QueryRowContext(ctx,
			"SELECT id FROM weekly_difficulty_overrides WHERE user_id = $1 AND week_start = $2",
			o.UserID, o.WeekStart,
		).Scan(&existingID)
		if err == nil {
			o.ID = existingID
			_, err = DB.ExecContext(ctx,
				"UPDATE weekly_difficulty_overrides SET override = $1 WHERE id = $2",
				o.Override, o.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to update difficulty override: %v", err)
			}
			return nil
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("failed to check difficulty override: %v", err)
		}

		result, err := DB.ExecContext(ctx,
			"INSERT INTO weekly_difficulty_overrides (user_id, week_start, override) VALUES ($1, $2, $3)",
			o.UserID, o.WeekStart, o.Override,
		)
		if err != nil {
			return fmt.Errorf("failed to insert difficulty override: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %v", err)
		}
		o.ID = id
		return nil
	}

	err := DB.QueryRowContext(ctx, `
		INSERT INTO weekly_difficulty_overrides (user_id, week_start, override)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, week_start) DO UPDATE SET override = EXCLUDED.override
		RETURNING id`,
		o.UserID, o.WeekStart, o.Override,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert difficulty override: %v", err)
	}
	return nil
}

// GetForWeek returns the user's override for the given week, or nil when the
// user made no explicit choice.
func (r *OverrideRepository) GetForWeek(ctx context.Context, userID, weekStart string) (*models.DifficultyOverride, error) {
	var o models.DifficultyOverride
	err := DB.GetContext(ctx, &o,
		"SELECT id, user_id, week_start, override FROM weekly_difficulty_overrides WHERE user_id = $1 AND week_start = $2",
		userID, weekStart,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get difficulty override: %v", err)
	}
	return &o, nil
}
