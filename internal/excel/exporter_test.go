package excel

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/example/habitflow/internal/database"
	"github.com/example/habitflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func connectTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, database.Connect())
	t.Cleanup(func() { _ = database.Close() })
}

func TestExportWorkbook(t *testing.T) {
	connectTestDB(t)
	ctx := context.Background()

	habits := database.NewHabitRepository()
	created, err := habits.ReplaceForUser(ctx, "u1", 0, []string{"Run", "Read"})
	require.NoError(t, err)
	require.Len(t, created, 2)

	completions := database.NewCompletionRepository()
	for _, day := range []string{"2025-08-18", "2025-08-19"} {
		_, err := completions.Toggle(ctx, "u1", created[0].ID, day)
		require.NoError(t, err)
	}

	require.NoError(t, database.NewWeeklyStatsRepository().Upsert(ctx, &models.WeeklyStats{
		UserID:        "u1",
		WeekStart:     "2025-08-17",
		CompletionPct: 90,
		StreakCount:   5,
		Difficulty:    models.DifficultyHarder,
		Summary:       "Great week.",
	}))

	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(ctx, &buf, "u1", "2025-08-17", "2025-08-23"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Habits", "Completions", "Weekly reports"}, f.GetSheetList())

	title, err := f.GetCellValue("Habits", "B2")
	require.NoError(t, err)
	assert.Contains(t, []string{"Run", "Read"}, title)

	date, err := f.GetCellValue("Completions", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-18", date)

	week, err := f.GetCellValue("Weekly reports", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-17", week)
	summary, err := f.GetCellValue("Weekly reports", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Great week.", summary)
}

func TestExportEmptyUser(t *testing.T) {
	connectTestDB(t)

	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(context.Background(), &buf, "nobody", "2025-08-17", "2025-08-23"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	// Headers only.
	header, err := f.GetCellValue("Habits", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)
	empty, err := f.GetCellValue("Habits", "A2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
