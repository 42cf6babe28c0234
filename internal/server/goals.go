package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/example/habitflow/pkg/models"
)

type goalBody struct {
	GoalTitle     string            `json:"goal_title"`
	Description   string            `json:"description"`
	Timeline      string            `json:"timeline"`
	Motivator     string            `json:"motivator"`
	FutureMessage string            `json:"future_message"`
	Difficulty    models.Difficulty `json:"difficulty"`
	Regenerate    bool              `json:"regenerate"`
}

func (b *goalBody) validate() string {
	if strings.TrimSpace(b.GoalTitle) == "" || strings.TrimSpace(b.Description) == "" ||
		strings.TrimSpace(b.Timeline) == "" || strings.TrimSpace(b.Motivator) == "" {
		return "goal_title, description, timeline and motivator are required"
	}
	if b.Difficulty != "" && !b.Difficulty.Valid() {
		return "invalid difficulty"
	}
	return ""
}

// POST /api/goals — create a goal and replace the user's habits with a fresh
// AI roadmap. GET /api/goals — alias for the latest goal.
func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request, userID string) {
	switch r.Method {
	case http.MethodGet:
		s.latestGoal(w, r, userID)

	case http.MethodPost:
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
		if err := s.goals.Create(r.Context(), &goal); err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}

		// Goal row is already committed; a generation failure leaves the user
		// with a goal and no habits, same as the row-level store allows.
		habits, err := s.service.RegenerateHabits(r.Context(), userID, &goal, body.Difficulty)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"goal":   goal,
			"habits": habits,
		})

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleGoalByID routes /api/goals/latest and PUT /api/goals/{id}.
func (s *Server) handleGoalByID(w http.ResponseWriter, r *http.Request, userID string) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/goals/")
	if rest == "latest" {
		s.latestGoal(w, r, userID)
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	if r.Method != http.MethodPut {
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
		ID:            id,
		UserID:        userID,
		GoalTitle:     body.GoalTitle,
		Description:   body.Description,
		Timeline:      body.Timeline,
		Motivator:     body.Motivator,
		FutureMessage: body.FutureMessage,
	}
	if err := s.goals.Update(r.Context(), &goal); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := map[string]interface{}{"goal": goal}
	if body.Regenerate {
		habits, err := s.service.RegenerateHabits(r.Context(), userID, &goal, body.Difficulty)
		if err != nil {
			// Goal already updated; report the mixed state as an error.
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		response["habits"] = habits
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) latestGoal(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	goal, err := s.goals.LatestByUser(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if goal == nil {
		writeErr(w, http.StatusNotFound, "no goal yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"goal": goal})
}
