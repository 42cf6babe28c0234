package models

// Goal is the overarching objective habits are generated to support.
// A user keeps one active goal by convention: the most recent row by created_at.
type Goal struct {
	ID            int64  `json:"id" db:"id"`
	UserID        string `json:"user_id" db:"user_id"`
	GoalTitle     string `json:"goal_title" db:"goal_title"`
	Description   string `json:"description" db:"description"`
	Timeline      string `json:"timeline" db:"timeline"`
	Motivator     string `json:"motivator" db:"motivator"`
	FutureMessage string `json:"future_message,omitempty" db:"future_message"`
	CreatedAt     string `json:"created_at" db:"created_at"`
}
