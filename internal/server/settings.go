package server

import (
	"net/http"

	"github.com/example/habitflow/pkg/models"
)

// GET|PUT /api/settings — notification preferences.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request, userID string) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.settings.Get(r.Context(), userID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var body struct {
			TelegramChatID      int64 `json:"telegram_chat_id"`
			ReminderHour        int   `json:"reminder_hour"`
			NotificationEnabled bool  `json:"notification_enabled"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.ReminderHour < 0 || body.ReminderHour > 23 {
			writeErr(w, http.StatusBadRequest, "reminder_hour must be 0-23")
			return
		}

		settings := models.UserSettings{
			UserID:              userID,
			TelegramChatID:      body.TelegramChatID,
			ReminderHour:        body.ReminderHour,
			NotificationEnabled: body.NotificationEnabled,
		}
		if err := s.settings.Upsert(r.Context(), &settings); err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, settings)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
