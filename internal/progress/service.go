package progress

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/example/habitflow/internal/database"
	"github.com/example/habitflow/internal/goal_streak"
	"github.com/example/habitflow/internal/stats"
	"github.com/example/habitflow/pkg/models"
)

// Generator is the AI collaborator used for habit roadmaps and weekly summaries.
type Generator interface {
	GenerateHabits(goal *models.Goal, difficulty models.Difficulty) ([]models.HabitSuggestion, error)
	GenerateWeeklyReport(score int, habitTitles []string, goal *models.Goal) (string, error)
}

// Service implements the habit-tracking logic on top of the repositories:
// weekly score, effective difficulty, streaks and the weekly report flow.
type Service struct {
	habits      *database.HabitRepository
	completions *database.CompletionRepository
	goals       *database.GoalRepository
	overrides   *database.OverrideRepository
	weekly      *database.WeeklyStatsRepository
	streaks     goal_streak.Store
	tracker     *goal_streak.Tracker
	generator   Generator
	policy      stats.ScorePolicy
}

// New creates the service. The score policy is taken from SCORE_POLICY
// (creation_gated by default).
func New(generator Generator) *Service {
	streaks := database.NewGoalStreakRepository()
	return &Service{
		habits:      database.NewHabitRepository(),
		completions: database.NewCompletionRepository(),
		goals:       database.NewGoalRepository(),
		overrides:   database.NewOverrideRepository(),
		weekly:      database.NewWeeklyStatsRepository(),
		streaks:     streaks,
		tracker:     goal_streak.New(streaks),
		generator:   generator,
		policy:      stats.ParseScorePolicy(os.Getenv("SCORE_POLICY")),
	}
}

// WeeklyScore computes the user's score for the calendar week containing ref.
func (s *Service) WeeklyScore(ctx context.Context, userID string, ref time.Time) (int, error) {
	created, err := s.habits.CreationDays(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(created) == 0 {
		return 0, nil
	}

	start := stats.FormatDay(stats.WeekStart(ref))
	end := stats.FormatDay(stats.WeekEnd(ref))
	completions, err := s.completions.ListByUserRange(ctx, userID, start, end)
	if err != nil {
		return 0, err
	}

	dates := make([]string, 0, len(completions))
	for _, c := range completions {
		dates = append(dates, c.Date)
	}
	return stats.WeeklyScore(created, dates, ref, s.policy), nil
}

// EffectiveDifficulty resolves next week's difficulty for the week containing
// ref: an explicit user override wins, otherwise the score decides.
func (s *Service) EffectiveDifficulty(ctx context.Context, userID string, ref time.Time) (models.Difficulty, error) {
	weekStart := stats.FormatDay(stats.WeekStart(ref))
	override, err := s.overrides.GetForWeek(ctx, userID, weekStart)
	if err != nil {
		return "", err
	}
	if override != nil {
		return override.Override, nil
	}

	score, err := s.WeeklyScore(ctx, userID, ref)
	if err != nil {
		return "", err
	}
	return stats.NextWeekChange(score), nil
}

// SaveOverride stores the user's explicit difficulty choice for the week
// containing ref.
func (s *Service) SaveOverride(ctx context.Context, userID string, d models.Difficulty, ref time.Time) error {
	if !d.Valid() {
		return fmt.Errorf("invalid difficulty %q", d)
	}
	return s.overrides.Upsert(ctx, &models.DifficultyOverride{
		UserID:    userID,
		WeekStart: stats.FormatDay(stats.WeekStart(ref)),
		Override:  d,
	})
}

// WeeklyNumbers aggregates this week's completions into the report figures.
func (s *Service) WeeklyNumbers(ctx context.Context, userID string, ref time.Time) (stats.WeeklyNumbers, error) {
	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return stats.WeeklyNumbers{}, err
	}

	weekStart := stats.WeekStart(ref)
	weekEnd := stats.WeekEnd(ref)
	completions, err := s.completions.ListByUserRange(ctx, userID,
		stats.FormatDay(weekStart), stats.FormatDay(weekEnd))
	if err != nil {
		return stats.WeeklyNumbers{}, err
	}

	days := stats.DaysBetween(weekStart, weekEnd)
	return stats.ComputeWeeklyNumbers(habits, completions, days), nil
}

// HabitStreak holds a habit together with its current consecutive-day streak.
type HabitStreak struct {
	Habit  models.Habit `json:"habit"`
	Streak int          `json:"streak"`
}

// HabitStreaks returns each habit with its current streak as of today.
func (s *Service) HabitStreaks(ctx context.Context, userID string, today time.Time) ([]HabitStreak, error) {
	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	streaks := make([]HabitStreak, 0, len(habits))
	for _, habit := range habits {
		dates, err := s.completions.DatesForHabit(ctx, userID, habit.ID)
		if err != nil {
			return nil, err
		}
		streaks = append(streaks, HabitStreak{
			Habit:  habit,
			Streak: stats.CurrentStreak(dates, today),
		})
	}
	return streaks, nil
}

// ToggleCompletion flips a habit's completion for the given day and runs the
// live goal-streak evaluation. Returns the completion state and the streak.
func (s *Service) ToggleCompletion(ctx context.Context, userID string, habitID int64, date string) (bool, int, error) {
	if _, err := s.habits.GetByID(ctx, userID, habitID); err != nil {
		return false, 0, err
	}

	completed, err := s.completions.Toggle(ctx, userID, habitID, date)
	if err != nil {
		return false, 0, err
	}

	streak, err := s.evaluateGoalStreak(ctx, userID, date, true)
	if err != nil {
		return completed, 0, err
	}
	return completed, streak, nil
}

// EvaluateEndOfDay runs the authoritative daily goal-streak evaluation.
func (s *Service) EvaluateEndOfDay(ctx context.Context, userID, day string) (int, error) {
	return s.evaluateGoalStreak(ctx, userID, day, false)
}

func (s *Service) evaluateGoalStreak(ctx context.Context, userID, day string, live bool) (int, error) {
	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	completed, err := s.completions.CountForDay(ctx, userID, day)
	if err != nil {
		return 0, err
	}

	if live {
		return s.tracker.EvaluateLive(ctx, userID, day, completed, len(habits))
	}
	return s.tracker.EvaluateEndOfDay(ctx, userID, day, completed, len(habits))
}

// CloseWeek computes the week's numbers, resolves the difficulty, asks the AI
// for a summary and stores the whole report for (user, week containing ref).
func (s *Service) CloseWeek(ctx context.Context, userID string, ref time.Time) (*models.WeeklyStats, error) {
	goal, err := s.goals.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, fmt.Errorf("user has no goal")
	}

	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	score, err := s.WeeklyScore(ctx, userID, ref)
	if err != nil {
		return nil, err
	}

	numbers, err := s.WeeklyNumbers(ctx, userID, ref)
	if err != nil {
		return nil, err
	}

	difficulty, err := s.EffectiveDifficulty(ctx, userID, ref)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(habits))
	for _, h := range habits {
		titles = append(titles, h.Title)
	}
	summary, err := s.generator.GenerateWeeklyReport(score, titles, goal)
	if err != nil {
		return nil, err
	}

	ws := &models.WeeklyStats{
		UserID:        userID,
		WeekStart:     stats.FormatDay(stats.WeekStart(ref)),
		CompletionPct: score,
		StreakCount:   numbers.BiggestStreak,
		Difficulty:    difficulty,
		Summary:       summary,
	}
	if err := s.weekly.Upsert(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// RegenerateHabits asks the AI for a fresh roadmap and replaces the user's
// habits with it. The delete and the inserts are separate steps; a failure in
// between leaves the user without habits until the next generation succeeds.
func (s *Service) RegenerateHabits(ctx context.Context, userID string, goal *models.Goal, difficulty models.Difficulty) ([]models.Habit, error) {
	suggestions, err := s.generator.GenerateHabits(goal, difficulty)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(suggestions))
	for _, sg := range suggestions {
		titles = append(titles, sg.Title)
	}
	return s.habits.ReplaceForUser(ctx, userID, goal.ID, titles)
}

// Generate asks the AI for a habit roadmap without persisting it.
func (s *Service) Generate(goal *models.Goal, difficulty models.Difficulty) ([]models.HabitSuggestion, error) {
	return s.generator.GenerateHabits(goal, difficulty)
}

// Summarize asks the AI for a weekly summary of the given score and habits.
func (s *Service) Summarize(score int, habitTitles []string, goal *models.Goal) (string, error) {
	return s.generator.GenerateWeeklyReport(score, habitTitles, goal)
}

// GoalStreak returns the user's current goal streak without evaluating.
func (s *Service) GoalStreak(ctx context.Context, userID string) (int, error) {
	rec, err := s.streaks.Latest(ctx, userID)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, nil
	}
	return rec.CurrentStreak, nil
}
