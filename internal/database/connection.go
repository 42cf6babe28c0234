package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// nowStamp is the timestamp written into created_at/updated_at columns.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// DB is the global database connection
var DB *sqlx.DB

// Type returns the configured database type: "postgres" (default) or "sqlite".
func Type() string {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		return "postgres"
	}
	return dbType
}

// Connect establishes a connection to the database and prepares the schema.
func Connect() error {
	var db *sqlx.DB
	var err error

	if Type() == "sqlite" {
		dbPath := os.Getenv("DB_PATH")
		if dbPath == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
			dbPath = filepath.Join(dataDir, "habitflow.db")
		}

		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}

		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
	}

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	idColumn := "id BIGSERIAL PRIMARY KEY"
	if Type() == "sqlite" {
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	// Date and timestamp columns are stored as text (yyyy-MM-dd / RFC 3339,
	// written by the repositories) so both drivers scan them into the string
	// fields the models use.
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS goals (
				%s,
				user_id TEXT NOT NULL,
				goal_title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				timeline TEXT NOT NULL DEFAULT '',
				motivator TEXT NOT NULL DEFAULT '',
				future_message TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS habits (
				%s,
				user_id TEXT NOT NULL,
				goal_id BIGINT NOT NULL DEFAULT 0,
				title TEXT NOT NULL,
				created_at TEXT NOT NULL
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS habit_completions (
				%s,
				habit_id BIGINT NOT NULL,
				user_id TEXT NOT NULL,
				date TEXT NOT NULL,
				UNIQUE(habit_id, date)
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS weekly_difficulty_overrides (
				%s,
				user_id TEXT NOT NULL,
				week_start TEXT NOT NULL,
				override TEXT NOT NULL,
				UNIQUE(user_id, week_start)
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS weekly_stats (
				%s,
				user_id TEXT NOT NULL,
				week_start TEXT NOT NULL,
				completion_pct INTEGER NOT NULL DEFAULT 0,
				streak_count INTEGER NOT NULL DEFAULT 0,
				difficulty TEXT NOT NULL DEFAULT 'same',
				summary TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL,
				UNIQUE(user_id, week_start)
			)
		`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS user_goal_streak (
				%s,
				user_id TEXT NOT NULL,
				current_streak INTEGER NOT NULL DEFAULT 0,
				last_checked TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)
		`, idColumn),
		`
			CREATE TABLE IF NOT EXISTS user_settings (
				user_id TEXT PRIMARY KEY,
				telegram_chat_id BIGINT NOT NULL DEFAULT 0,
				reminder_hour INTEGER NOT NULL DEFAULT 20,
				notification_enabled BOOLEAN NOT NULL DEFAULT true,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)
		`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}

	return nil
}
