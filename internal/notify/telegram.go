package notify

import (
	"fmt"
	"os"

	"github.com/example/habitflow/internal/stats"
	"github.com/example/habitflow/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram pushes reminders and weekly reports to users who linked a chat id
// in their settings.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// NewTelegram creates the notifier from TELEGRAM_BOT_TOKEN.
func NewTelegram() (*Telegram, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &Telegram{api: api}, nil
}

// SendReminder tells the user how many habits are still open today.
func (t *Telegram) SendReminder(chatID int64, incomplete int) error {
	text := fmt.Sprintf("You still have %d habit(s) to check off today. A small step now keeps the streak alive!", incomplete)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}

// SendWeeklyReport pushes the stored weekly report to the user's chat.
func (t *Telegram) SendWeeklyReport(chatID int64, report *models.WeeklyStats) error {
	text := fmt.Sprintf(
		"Your week in review (%s):\n\nScore: %d%%\nBest streak: %d days\nNext week: %s\n\n%s\n\n%s",
		report.WeekStart,
		report.CompletionPct,
		report.StreakCount,
		report.Difficulty,
		report.Summary,
		stats.EncouragementMessage(report.Difficulty),
	)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send weekly report: %v", err)
	}
	return nil
}
