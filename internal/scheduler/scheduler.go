package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/habitflow/internal/database"
	"github.com/example/habitflow/internal/progress"
	"github.com/example/habitflow/internal/stats"
	"github.com/example/habitflow/pkg/models"
	"github.com/go-co-op/gocron"
)

// Default hours (UTC) for the clock-driven jobs.
const (
	DefaultReminderStartHour = 8  // reminders are only sent between these hours
	DefaultReminderEndHour   = 22 //
	DefaultEndOfDayHour      = 23 // daily goal-streak evaluation and, on Saturdays, the weekly close
)

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(chatID int64, incomplete int) error
	SendWeeklyReport(chatID int64, report *models.WeeklyStats) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *progress.Service
	notifier  Notifier
}

// New creates a new scheduler instance. notifier may be nil; notification
// steps are then skipped.
func New(service *progress.Service, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// One hourly tick drives everything; each job gates on the current hour.
	s.scheduler.Every(1).Hour().Do(s.tick)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) tick() {
	now := time.Now().UTC()
	hour := now.Hour()

	s.sendReminders(now, hour)

	if hour == envHour("END_OF_DAY_HOUR", DefaultEndOfDayHour) {
		s.runEndOfDay(now)
		if now.Weekday() == time.Saturday {
			// Last evaluation of the week: close it out and push reports.
			s.closeWeeks(now)
		}
	}
}

// sendReminders nudges users whose reminder hour matches and who still have
// incomplete habits today.
func (s *Scheduler) sendReminders(now time.Time, hour int) {
	startHour := envHour("REMINDER_START_HOUR", DefaultReminderStartHour)
	endHour := envHour("REMINDER_END_HOUR", DefaultReminderEndHour)
	if hour < startHour || hour > endHour {
		return
	}
	if s.notifier == nil {
		return
	}

	ctx := context.Background()
	settingsRepo := database.NewUserSettingsRepository()
	habitRepo := database.NewHabitRepository()
	completionRepo := database.NewCompletionRepository()

	users, err := settingsRepo.ListForReminderHour(ctx, hour)
	if err != nil {
		log.Printf("Error getting users for reminder: %v", err)
		return
	}

	today := stats.FormatDay(now)
	for _, user := range users {
		habits, err := habitRepo.ListByUser(ctx, user.UserID)
		if err != nil {
			log.Printf("Error getting habits for user %s: %v", user.UserID, err)
			continue
		}
		if len(habits) == 0 {
			continue
		}

		completed, err := completionRepo.CountForDay(ctx, user.UserID, today)
		if err != nil {
			log.Printf("Error counting completions for user %s: %v", user.UserID, err)
			continue
		}

		if incomplete := len(habits) - completed; incomplete > 0 {
			if err := s.notifier.SendReminder(user.TelegramChatID, incomplete); err != nil {
				log.Printf("Error sending reminder to user %s: %v", user.UserID, err)
			}
		}
	}
}

// runEndOfDay runs the authoritative goal-streak evaluation for every user
// with habits.
func (s *Scheduler) runEndOfDay(now time.Time) {
	ctx := context.Background()
	userIDs, err := database.NewHabitRepository().UserIDs(ctx)
	if err != nil {
		log.Printf("Error listing users for end-of-day evaluation: %v", err)
		return
	}

	today := stats.FormatDay(now)
	for _, userID := range userIDs {
		if _, err := s.service.EvaluateEndOfDay(ctx, userID, today); err != nil {
			log.Printf("Error evaluating goal streak for user %s: %v", userID, err)
		}
	}
}

// closeWeeks generates and stores the weekly report for every user, pushing
// it to users with a linked Telegram chat.
func (s *Scheduler) closeWeeks(now time.Time) {
	ctx := context.Background()
	userIDs, err := database.NewHabitRepository().UserIDs(ctx)
	if err != nil {
		log.Printf("Error listing users for weekly close: %v", err)
		return
	}

	settingsRepo := database.NewUserSettingsRepository()
	for _, userID := range userIDs {
		report, err := s.service.CloseWeek(ctx, userID, now)
		if err != nil {
			log.Printf("Error closing week for user %s: %v", userID, err)
			continue
		}

		if s.notifier == nil {
			continue
		}
		settings, err := settingsRepo.Get(ctx, userID)
		if err != nil {
			log.Printf("Error getting settings for user %s: %v", userID, err)
			continue
		}
		if settings.TelegramChatID == 0 || !settings.NotificationEnabled {
			continue
		}
		if err := s.notifier.SendWeeklyReport(settings.TelegramChatID, report); err != nil {
			log.Printf("Error sending weekly report to user %s: %v", userID, err)
		}
	}
}

// RunWeeklyCloseNow forces the weekly close, for ops use.
func (s *Scheduler) RunWeeklyCloseNow() {
	s.closeWeeks(time.Now().UTC())
}

func envHour(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
