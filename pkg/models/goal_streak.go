package models

// GoalStreak is the single mutable counter of consecutive days a user
// completed at least 80% of their habits. At most one row per user is
// considered current, selected by max last_checked.
type GoalStreak struct {
	ID            int64  `json:"id" db:"id"`
	UserID        string `json:"user_id" db:"user_id"`
	CurrentStreak int    `json:"current_streak" db:"current_streak"`
	LastChecked   string `json:"last_checked" db:"last_checked"` // yyyy-MM-dd
	CreatedAt     string `json:"created_at" db:"created_at"`
	UpdatedAt     string `json:"updated_at" db:"updated_at"`
}
