package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/example/habitflow/internal/stats"
	"github.com/example/habitflow/pkg/models"
)

// POST /api/generate-habits — generate a habit roadmap for the goal fields in
// the body without persisting anything. The dashboard persists via /api/goals.
func (s *Server) handleGenerateHabits(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body goalBody
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}

	goal := models.Goal{
		UserID:        userID,
		GoalTitle:     body.GoalTitle,
		Description:   body.Description,
		Timeline:      body.Timeline,
		Motivator:     body.Motivator,
		FutureMessage: body.FutureMessage,
	}
	habits, err := s.service.Generate(&goal, body.Difficulty)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": habits})
}

// POST /api/weekly-report — generate a summary for the score and habits in
// the body. Stateless: nothing is stored (that's /api/close-week).
func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Score  int      `json:"score"`
		Habits []string `json:"habits"`
		Goal   goalBody `json:"goal"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal := models.Goal{
		GoalTitle:     body.Goal.GoalTitle,
		Description:   body.Goal.Description,
		Timeline:      body.Goal.Timeline,
		Motivator:     body.Goal.Motivator,
		FutureMessage: body.Goal.FutureMessage,
	}
	summary, err := s.service.Summarize(body.Score, body.Habits, &goal)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "Failed to generate summary")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"summary": summary})
}

// POST /api/save-difficulty-override — store the user's choice for this week.
func (s *Server) handleSaveOverride(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Override models.Difficulty `json:"override"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !body.Override.Valid() {
		writeErr(w, http.StatusBadRequest, "override must be easier, same or harder")
		return
	}

	if err := s.service.SaveOverride(r.Context(), userID, body.Override, time.Now().UTC()); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// GET /api/weekly-stats?week_start= — the stored report for a week (default:
// current week), plus the live numbers for the week in progress.
func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now().UTC()
	weekStart := r.URL.Query().Get("week_start")
	if weekStart == "" {
		weekStart = stats.FormatDay(stats.WeekStart(now))
	} else if _, err := stats.ParseDay(weekStart); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid week_start")
		return
	}

	stored, err := s.weekly.GetForWeek(r.Context(), userID, weekStart)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	numbers, err := s.service.WeeklyNumbers(r.Context(), userID, now)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"week_start": weekStart,
		"report":     stored, // null until the week is closed
		"numbers":    numbers,
	})
}

// GET /api/weekly-stats/history — past weekly reports, newest first.
func (s *Server) handleWeeklyStatsHistory(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	history, err := s.weekly.History(r.Context(), userID, 52)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if history == nil {
		history = []models.WeeklyStats{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

// POST /api/close-week — compute, summarize and store this week's report.
func (s *Server) handleCloseWeek(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := s.service.CloseWeek(r.Context(), userID, time.Now().UTC())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

// GET /api/export?start=&end= — download the history workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now().UTC()
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" {
		// Default to the last ~3 months of history.
		start = stats.FormatDay(now.AddDate(0, -3, 0))
	}
	if end == "" {
		end = stats.FormatDay(now)
	}

	// Build the workbook in memory first so errors can still become a JSON 500.
	var buf bytes.Buffer
	if err := s.exporter.Export(r.Context(), &buf, userID, start, end); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=habitflow-%s.xlsx", end))
	_, _ = w.Write(buf.Bytes())
}
