package models

// UserSettings holds per-user notification preferences.
// TelegramChatID is 0 until the user links a chat; reminders are then skipped.
type UserSettings struct {
	UserID              string `json:"user_id" db:"user_id"`
	TelegramChatID      int64  `json:"telegram_chat_id" db:"telegram_chat_id"`
	ReminderHour        int    `json:"reminder_hour" db:"reminder_hour"` // 0-23, UTC
	NotificationEnabled bool   `json:"notification_enabled" db:"notification_enabled"`
	CreatedAt           string `json:"created_at" db:"created_at"`
	UpdatedAt           string `json:"updated_at" db:"updated_at"`
}
