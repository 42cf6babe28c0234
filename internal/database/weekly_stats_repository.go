package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/habitflow/pkg/models"
)

// WeeklyStatsRepository handles database operations for weekly stats
type WeeklyStatsRepository struct{}

// NewWeeklyStatsRepository creates a new repository instance
func NewWeeklyStatsRepository() *WeeklyStatsRepository {
	return &WeeklyStatsRepository{}
}

// Upsert stores the weekly report row for (user, week), replacing any
// previous run for the same week.
func (r *WeeklyStatsRepository) Upsert(ctx context.Context, ws *models.WeeklyStats) error {
	if ws.CreatedAt == "" {
		ws.CreatedAt = nowStamp()
	}

	if Type() == "sqlite" {
		var existingID int64
		err := DB.QueryRowContext(ctx,
			"SELECT id FROM weekly_stats WHERE user_id = $1 AND week_start = $2",
			ws.UserID, ws.WeekStart,
		).Scan(&existingID)
		if err == nil {
			ws.ID = existingID
			_, err = DB.ExecContext(ctx, `
				UPDATE weekly_stats SET
					completion_pct = $1,
					streak_count = $2,
					difficulty = $3,
					summary = $4
				WHERE id = $5`,
				ws.CompletionPct, ws.StreakCount, ws.Difficulty, ws.Summary, ws.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to update weekly stats: %v", err)
			}
			return nil
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("failed to check weekly stats: %v", err)
		}

		result, err := DB.ExecContext(ctx, `
			INSERT INTO weekly_stats (user_id, week_start, completion_pct, streak_count, difficulty, summary, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			ws.UserID, ws.WeekStart, ws.CompletionPct, ws.StreakCount, ws.Difficulty, ws.Summary, ws.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert weekly stats: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert ID: %v", err)
		}
		ws.ID = id
		return nil
	}

	err := DB.QueryRowContext(ctx, `
		INSERT INTO weekly_stats (user_id, week_start, completion_pct, streak_count, difficulty, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			completion_pct = EXCLUDED.completion_pct,
			streak_count = EXCLUDED.streak_count,
			difficulty = EXCLUDED.difficulty,
			summary = EXCLUDED.summary
		RETURNING id`,
		ws.UserID, ws.WeekStart, ws.CompletionPct, ws.StreakCount, ws.Difficulty, ws.Summary, ws.CreatedAt,
	).Scan(&ws.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert weekly stats: %v", err)
	}
	return nil
}

// GetForWeek returns the stored report for (user, week), or nil when the week
// hasn't been closed yet.
func (r *WeeklyStatsRepository) GetForWeek(ctx context.Context, userID, weekStart string) (*models.WeeklyStats, error) {
	var ws models.WeeklyStats
	query := `
		SELECT id, user_id, week_start, completion_pct, streak_count, difficulty, summary, created_at
		FROM weekly_stats
		WHERE user_id = $1 AND week_start = $2
	`
	err := DB.GetContext(ctx, &ws, query, userID, weekStart)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly stats: %v", err)
	}
	return &ws, nil
}

// History returns up to limit past weekly reports, newest week first.
func (r *WeeklyStatsRepository) History(ctx context.Context, userID string, limit int) ([]models.WeeklyStats, error) {
	var history []models.WeeklyStats
	query := `
		SELECT id, user_id, week_start, completion_pct, streak_count, difficulty, summary, created_at
		FROM weekly_stats
		WHERE user_id = $1
		ORDER BY week_start DESC
		LIMIT $2
	`
	if err := DB.SelectContext(ctx, &history, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get weekly stats history: %v", err)
	}
	return history, nil
}
