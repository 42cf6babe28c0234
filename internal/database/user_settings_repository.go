package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/habitflow/pkg/models"
)

// UserSettingsRepository handles database operations for user settings
type UserSettingsRepository struct{}

// NewUserSettingsRepository creates a new repository instance
func NewUserSettingsRepository() *UserSettingsRepository {
	return &UserSettingsRepository{}
}

// Get returns the user's settings, falling back to defaults when the user
// never saved any.
func (r *UserSettingsRepository) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	var s models.UserSettings
	query := `
		SELECT user_id, telegram_chat_id, reminder_hour, notification_enabled, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`
	err := DB.GetContext(ctx, &s, query, userID)
	if err == sql.ErrNoRows {
		return &models.UserSettings{
			UserID:              userID,
			ReminderHour:        20,
			NotificationEnabled: true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user settings: %v", err)
	}
	return &s, nil
}

// Upsert saves the user's settings.
func (r *UserSettingsRepository) Upsert(ctx context.Context, s *models.UserSettings) error {
	now := nowStamp()
	if s.CreatedAt == "" {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	if Type() == "sqlite" {
		result, err := DB.ExecContext(ctx, `
			UPDATE user_settings SET
				telegram_chat_id = $1,
				reminder_hour = $2,
				notification_enabled = $3,
				updated_at = $4
			WHERE user_id = $5`,
			s.TelegramChatID, s.ReminderHour, s.NotificationEnabled, s.UpdatedAt, s.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update user settings: %v", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %v", err)
		}
		if rows > 0 {
			return nil
		}

		if _, err := DB.ExecContext(ctx, `
			INSERT INTO user_settings (user_id, telegram_chat_id, reminder_hour, notification_enabled, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			s.UserID, s.TelegramChatID, s.ReminderHour, s.NotificationEnabled, s.CreatedAt, s.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert user settings: %v", err)
		}
		return nil
	}

	if _, err := DB.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, telegram_chat_id, reminder_hour, notification_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			telegram_chat_id = EXCLUDED.telegram_chat_id,
			reminder_hour = EXCLUDED.reminder_hour,
			notification_enabled = EXCLUDED.notification_enabled,
			updated_at = EXCLUDED.updated_at`,
		s.UserID, s.TelegramChatID, s.ReminderHour, s.NotificationEnabled, s.CreatedAt, s.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert user settings: %v", err)
	}
	return nil
}

// ListForReminderHour returns users who want a reminder at the given hour and
// have a Telegram chat linked.
func (r *UserSettingsRepository) ListForReminderHour(ctx context.Context, hour int) ([]models.UserSettings, error) {
	var users []models.UserSettings
	query := `
		SELECT user_id, telegram_chat_id, reminder_hour, notification_enabled, created_at, updated_at
		FROM user_settings
		WHERE notification_enabled = $1 AND reminder_hour = $2 AND telegram_chat_id != 0
	`
	if err := DB.SelectContext(ctx, &users, query, true, hour); err != nil {
		return nil, fmt.Errorf("failed to list users for reminder: %v", err)
	}
	return users, nil
}
