package models

// Habit represents a daily habit tracked by a user.
// CreatedAt uses the yyyy-MM-dd format; only the day matters for scoring.
type Habit struct {
	ID        int64  `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	GoalID    int64  `json:"goal_id,omitempty" db:"goal_id"` // 0 for habits added by hand
	Title     string `json:"title" db:"title"`
	CreatedAt string `json:"created_at" db:"created_at"`
}

// HabitSuggestion is a habit title proposed by the AI generator before it is persisted.
type HabitSuggestion struct {
	Title string `json:"title"`
}
