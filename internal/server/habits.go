package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/habitflow/internal/stats"
	"github.com/example/habitflow/pkg/models"
)

// GET /api/habits — list the user's habits.
// POST /api/habits — add a habit by hand.
func (s *Server) handleHabits(w http.ResponseWriter, r *http.Request, userID string) {
	switch r.Method {
	case http.MethodGet:
		habits, err := s.habits.ListByUser(r.Context(), userID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		if habits == nil {
			habits = []models.Habit{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"habits": habits})

	case http.MethodPost:
		var body struct {
			Title string `json:"title"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid request body")
			return
		}
		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			writeErr(w, http.StatusBadRequest, "title is required")
			return
		}

		habit := models.Habit{UserID: userID, Title: body.Title}
		if err := s.habits.Create(r.Context(), &habit); err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, habit)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleHabitByID routes /api/habits/{id} and /api/habits/{id}/toggle.
func (s *Server) handleHabitByID(w http.ResponseWriter, r *http.Request, userID string) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/habits/")
	if toggled := strings.TrimSuffix(rest, "/toggle"); toggled != rest {
		s.handleToggle(w, r, userID, toggled)
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid habit id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var body struct {
			Title string `json:"title"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(body.Title) == "" {
			writeErr(w, http.StatusBadRequest, "title is required")
			return
		}
		if err := s.habits.UpdateTitle(r.Context(), userID, id, strings.TrimSpace(body.Title)); err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	case http.MethodDelete:
		if err := s.habits.Delete(r.Context(), userID, id); err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// POST /api/habits/{id}/toggle — flip today's (or the given day's) completion
// and run the live goal-streak evaluation.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request, userID, idPart string) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid habit id")
		return
	}

	var body struct {
		Date string `json:"date"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if body.Date == "" {
		body.Date = stats.FormatDay(time.Now().UTC())
	} else if _, err := stats.ParseDay(body.Date); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid date")
		return
	}

	completed, streak, err := s.service.ToggleCompletion(r.Context(), userID, id, body.Date)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"completed":   completed,
		"goal_streak": streak,
	})
}

// GET /api/completions?start=&end= — completion rows in a day range,
// defaulting to the current week.
func (s *Server) handleCompletions(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now().UTC()
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" {
		start = stats.FormatDay(stats.WeekStart(now))
	}
	if end == "" {
		end = stats.FormatDay(stats.WeekEnd(now))
	}

	completions, err := s.completions.ListByUserRange(r.Context(), userID, start, end)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if completions == nil {
		completions = []models.Completion{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"completions": completions})
}

// GET /api/dashboard — everything the dashboard needs in one call.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx := r.Context()
	now := time.Now().UTC()

	score, err := s.service.WeeklyScore(ctx, userID, now)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	difficulty, err := s.service.EffectiveDifficulty(ctx, userID, now)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	habitStreaks, err := s.service.HabitStreaks(ctx, userID, now)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	goalStreak, err := s.service.GoalStreak(ctx, userID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weekly_score":    score,
		"next_difficulty": difficulty,
		"message":         stats.EncouragementMessage(difficulty),
		"goal_streak":     goalStreak,
		"habit_streaks":   habitStreaks,
	})
}
