package models

// DifficultyOverride is a user's explicit choice of next week's difficulty.
// Unique per (user_id, week_start); it takes precedence over the score-derived value.
type DifficultyOverride struct {
	ID        int64      `json:"id" db:"id"`
	UserID    string     `json:"user_id" db:"user_id"`
	WeekStart string     `json:"week_start" db:"week_start"` // yyyy-MM-dd, always a Sunday
	Override  Difficulty `json:"override" db:"override"`
}

// WeeklyStats is the persisted weekly report for one user and one week.
// Unique per (user_id, week_start).
type WeeklyStats struct {
	ID            int64      `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	WeekStart     string     `json:"week_start" db:"week_start"`
	CompletionPct int        `json:"completion_pct" db:"completion_pct"`
	StreakCount   int        `json:"streak_count" db:"streak_count"`
	Difficulty    Difficulty `json:"difficulty" db:"difficulty"`
	Summary       string     `json:"summary" db:"summary"`
	CreatedAt     string     `json:"created_at" db:"created_at"`
}
