package server

import (
	"encoding/json"
	"net/http"

	"github.com/example/habitflow/internal/database"
	"github.com/example/habitflow/internal/excel"
	"github.com/example/habitflow/internal/progress"
)

// Server handles the HTTP API consumed by the UI. Authentication is done by
// the gateway in front; requests carry the authenticated user in X-User-ID.
type Server struct {
	service     *progress.Service
	habits      *database.HabitRepository
	completions *database.CompletionRepository
	goals       *database.GoalRepository
	weekly      *database.WeeklyStatsRepository
	settings    *database.UserSettingsRepository
	exporter    *excel.Exporter
}

// New creates the API server around the progress service.
func New(service *progress.Service) *Server {
	return &Server{
		service:     service,
		habits:      database.NewHabitRepository(),
		completions: database.NewCompletionRepository(),
		goals:       database.NewGoalRepository(),
		weekly:      database.NewWeeklyStatsRepository(),
		settings:    database.NewUserSettingsRepository(),
		exporter:    excel.NewExporter(),
	}
}

// Routes returns the mux with every API endpoint registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/generate-habits", s.requireUser(s.handleGenerateHabits))
	mux.HandleFunc("/api/weekly-report", s.requireUser(s.handleWeeklyReport))
	mux.HandleFunc("/api/save-difficulty-override", s.requireUser(s.handleSaveOverride))

	mux.HandleFunc("/api/habits", s.requireUser(s.handleHabits))
	mux.HandleFunc("/api/habits/", s.requireUser(s.handleHabitByID))
	mux.HandleFunc("/api/completions", s.requireUser(s.handleCompletions))
	mux.HandleFunc("/api/dashboard", s.requireUser(s.handleDashboard))

	mux.HandleFunc("/api/goals", s.requireUser(s.handleGoals))
	mux.HandleFunc("/api/goals/", s.requireUser(s.handleGoalByID))

	mux.HandleFunc("/api/weekly-stats", s.requireUser(s.handleWeeklyStats))
	mux.HandleFunc("/api/weekly-stats/history", s.requireUser(s.handleWeeklyStatsHistory))
	mux.HandleFunc("/api/close-week", s.requireUser(s.handleCloseWeek))

	mux.HandleFunc("/api/export", s.requireUser(s.handleExport))
	mux.HandleFunc("/api/settings", s.requireUser(s.handleSettings))

	return mux
}

// userHandler is a handler that already knows the authenticated user.
type userHandler func(w http.ResponseWriter, r *http.Request, userID string)

// requireUser rejects requests without an authenticated user id.
func (s *Server) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			writeErr(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, userID)
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]interface{}{"error": msg})
}

func decodeJSON(r *http.Request, out interface{}) error {
	return json.NewDecoder(r.Body).Decode(out)
}
