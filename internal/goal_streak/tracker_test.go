package goal_streak

import (
	"context"
	"testing"

	"github.com/example/habitflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps the streak record in memory for tracker tests.
type memStore struct {
	rec     *models.GoalStreak
	inserts int
	updates int
}

func (m *memStore) Latest(ctx context.Context, userID string) (*models.GoalStreak, error) {
	if m.rec == nil {
		return nil, nil
	}
	cp := *m.rec
	return &cp, nil
}

func (m *memStore) Insert(ctx context.Context, rec *models.GoalStreak) error {
	cp := *rec
	m.rec = &cp
	m.inserts++
	return nil
}

func (m *memStore) Update(ctx context.Context, rec *models.GoalStreak) error {
	cp := *rec
	m.rec = &cp
	m.updates++
	return nil
}

func TestPassed(t *testing.T) {
	assert.False(t, Passed(0, 0), "no habits never passes")
	assert.True(t, Passed(4, 5))
	assert.False(t, Passed(3, 5))
	assert.True(t, Passed(5, 5))
}

func TestLiveFirstPassCreatesRecord(t *testing.T) {
	store := &memStore{}
	tracker := New(store)
	ctx := context.Background()

	// Below threshold: nothing is created yet.
	streak, err := tracker.EvaluateLive(ctx, "u1", "2025-08-20", 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
	assert.Nil(t, store.rec)

	// Crossing 80% creates the record at 1.
	streak, err = tracker.EvaluateLive(ctx, "u1", "2025-08-20", 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	require.NotNil(t, store.rec)
	assert.Equal(t, "2025-08-20", store.rec.LastChecked)
}

func TestLiveIncrementsOncePerDay(t *testing.T) {
	store := &memStore{rec: &models.GoalStreak{ID: 1, UserID: "u1", CurrentStreak: 3, LastChecked: "2025-08-19"}}
	tracker := New(store)
	ctx := context.Background()

	streak, err := tracker.EvaluateLive(ctx, "u1", "2025-08-20", 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, streak)

	// Toggling more habits the same day doesn't increment again.
	streak, err = tracker.EvaluateLive(ctx, "u1", "2025-08-20", 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, streak)
	assert.Equal(t, 1, store.updates)
}

// Un-checking a habit after crossing the threshold leaves the counter alone
// until the end-of-day evaluation.
func TestLiveDoesNotDecrementMidDay(t *testing.T) {
	store := &memStore{rec: &models.GoalStreak{ID: 1, UserID: "u1", CurrentStreak: 4, LastChecked: "2025-08-20"}}
	tracker := New(store)

	streak, err := tracker.EvaluateLive(context.Background(), "u1", "2025-08-20", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, streak)
	assert.Equal(t, 0, store.updates)
}

// Toggling a day before last_checked must not inflate the counter: alternating
// between today and yesterday would otherwise increment without bound.
func TestLiveIgnoresBackdatedDay(t *testing.T) {
	store := &memStore{rec: &models.GoalStreak{ID: 1, UserID: "u1", CurrentStreak: 1, LastChecked: "2025-08-20"}}
	tracker := New(store)

	streak, err := tracker.EvaluateLive(context.Background(), "u1", "2025-08-19", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, "2025-08-20", store.rec.LastChecked)
	assert.Equal(t, 0, store.updates)
}

func TestLiveNoHabitsNoChange(t *testing.T) {
	store := &memStore{rec: &models.GoalStreak{ID: 1, UserID: "u1", CurrentStreak: 2, LastChecked: "2025-08-19"}}
	tracker := New(store)

	streak, err := tracker.EvaluateLive(context.Background(), "u1", "2025-08-20", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
	assert.Equal(t, 0, store.updates)
}

func TestEndOfDayResetsOnMiss(t *testing.T) {
	store := &memStore{rec: &models.GoalStreak{ID: 1, UserID: "u1", CurrentStreak: 6, LastChecked: "2025-08-19"}}
	tracker := New(store)

	streak, err := tracker.EvaluateEndOfDay(context.Background(), "u1", "2025-08-20", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
	assert.Equal(t, "2025-08-20", store.rec.LastChecked)
}

func TestEndOfDayIncrementsOnPass(t *testing.T) {
	store := &memStore{rec: &models.GoalStreak{ID: 1, UserID: "u1", CurrentStreak: 6, LastChecked: "2025-08-19"}}
	tracker := New(store)

	streak, err := tracker.EvaluateEndOfDay(context.Background(), "u1", "2025-08-20", 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, streak)
}

// Running the end-of-day evaluation twice for the same day is a no-op the
// second time.
func TestEndOfDayIdempotent(t *testing.T) {
	store := &memStore{rec: &models.GoalStreak{ID: 1, UserID: "u1", CurrentStreak: 2, LastChecked: "2025-08-19"}}
	tracker := New(store)
	ctx := context.Background()

	first, err := tracker.EvaluateEndOfDay(ctx, "u1", "2025-08-20", 4, 5)
	require.NoError(t, err)
	second, err := tracker.EvaluateEndOfDay(ctx, "u1", "2025-08-20", 4, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.updates)
}

func TestEndOfDayIgnoresBackdatedDay(t *testing.T) {
	store := &memStore{rec: &models.GoalStreak{ID: 1, UserID: "u1", CurrentStreak: 3, LastChecked: "2025-08-20"}}
	tracker := New(store)

	streak, err := tracker.EvaluateEndOfDay(context.Background(), "u1", "2025-08-19", 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
	assert.Equal(t, "2025-08-20", store.rec.LastChecked)
	assert.Equal(t, 0, store.updates)
}

func TestEndOfDayFirstRecord(t *testing.T) {
	store := &memStore{}
	tracker := New(store)
	ctx := context.Background()

	streak, err := tracker.EvaluateEndOfDay(ctx, "u1", "2025-08-20", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
	assert.Nil(t, store.rec)

	streak, err = tracker.EvaluateEndOfDay(ctx, "u1", "2025-08-21", 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}
