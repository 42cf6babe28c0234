package models

// Completion records that a habit was performed on a specific day.
// Existence of the row is the whole signal; rows are inserted and deleted, never updated.
type Completion struct {
	ID      int64  `json:"id" db:"id"`
	HabitID int64  `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`
	Date    string `json:"date" db:"date"` // yyyy-MM-dd
}
