package goal_streak

import (
	"context"
	"fmt"

	"github.com/example/habitflow/pkg/models"
)

// PassThreshold is the share of habits that must be completed for a day to
// count toward the goal streak.
const PassThreshold = 0.8

// Store abstracts the user_goal_streak row so the live/end-of-day race is
// explicit and testable.
type Store interface {
	// Latest returns the current streak record for the user, or nil when the
	// user has never passed a day.
	Latest(ctx context.Context, userID string) (*models.GoalStreak, error)
	Insert(ctx context.Context, rec *models.GoalStreak) error
	Update(ctx context.Context, rec *models.GoalStreak) error
}

// Tracker maintains the per-user goal streak counter.
type Tracker struct {
	store Store
}

// New creates a tracker backed by the given store.
func New(store Store) *Tracker {
	return &Tracker{store: store}
}

// Passed reports whether completed out of total habits clears the threshold.
// A user with no habits never passes.
func Passed(completed, total int) bool {
	if total == 0 {
		return false
	}
	return float64(completed)/float64(total) >= PassThreshold
}

// EvaluateLive updates the streak after a completion toggle on day (yyyy-MM-dd).
// It increments at most once per day, on the first crossing of the threshold,
// and never decrements mid-day: un-checking a habit later leaves the counter
// alone until the end-of-day evaluation. Returns the current streak.
func (t *Tracker) EvaluateLive(ctx context.Context, userID, day string, completed, total int) (int, error) {
	if total == 0 {
		// No habits means no streak change.
		return t.currentValue(ctx, userID)
	}
	passed := Passed(completed, total)

	rec, err := t.store.Latest(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load goal streak: %v", err)
	}

	if rec == nil {
		if !passed {
			// Don't create a record until the first pass.
			return 0, nil
		}
		rec = &models.GoalStreak{UserID: userID, CurrentStreak: 1, LastChecked: day}
		if err := t.store.Insert(ctx, rec); err != nil {
			return 0, fmt.Errorf("failed to insert goal streak: %v", err)
		}
		return rec.CurrentStreak, nil
	}

	// Already evaluated this day or a later one. Backdated toggles must not
	// increment the counter or move last_checked backward.
	if rec.LastChecked >= day {
		return rec.CurrentStreak, nil
	}
	if !passed {
		// Mid-day misses are left for the end-of-day evaluation.
		return rec.CurrentStreak, nil
	}

	rec.CurrentStreak++
	rec.LastChecked = day
	if err := t.store.Update(ctx, rec); err != nil {
		return 0, fmt.Errorf("failed to update goal streak: %v", err)
	}
	return rec.CurrentStreak, nil
}

// EvaluateEndOfDay is the authoritative daily evaluation: the streak is
// incremented when the day passed and reset to zero when it did not.
// Calling it twice for the same day is a no-op the second time.
func (t *Tracker) EvaluateEndOfDay(ctx context.Context, userID, day string, completed, total int) (int, error) {
	if total == 0 {
		return t.currentValue(ctx, userID)
	}
	passed := Passed(completed, total)

	rec, err := t.store.Latest(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load goal streak: %v", err)
	}

	if rec == nil {
		if !passed {
			return 0, nil
		}
		rec = &models.GoalStreak{UserID: userID, CurrentStreak: 1, LastChecked: day}
		if err := t.store.Insert(ctx, rec); err != nil {
			return 0, fmt.Errorf("failed to insert goal streak: %v", err)
		}
		return rec.CurrentStreak, nil
	}

	if rec.LastChecked >= day {
		return rec.CurrentStreak, nil
	}

	if passed {
		rec.CurrentStreak++
	} else {
		rec.CurrentStreak = 0
	}
	rec.LastChecked = day
	if err := t.store.Update(ctx, rec); err != nil {
		return 0, fmt.Errorf("failed to update goal streak: %v", err)
	}
	return rec.CurrentStreak, nil
}

func (t *Tracker) currentValue(ctx context.Context, userID string) (int, error) {
	rec, err := t.store.Latest(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load goal streak: %v", err)
	}
	if rec == nil {
		return 0, nil
	}
	return rec.CurrentStreak, nil
}
