package excel

import (
	"context"
	"fmt"
	"io"

	"github.com/example/habitflow/internal/database"
	"github.com/xuri/excelize/v2"
)

// Exporter builds a history workbook for one user: habits, completion rows
// and past weekly reports, one sheet each.
type Exporter struct {
	habits      *database.HabitRepository
	completions *database.CompletionRepository
	weekly      *database.WeeklyStatsRepository
}

// NewExporter creates a new exporter instance
func NewExporter() *Exporter {
	return &Exporter{
		habits:      database.NewHabitRepository(),
		completions: database.NewCompletionRepository(),
		weekly:      database.NewWeeklyStatsRepository(),
	}
}

// historyLimit caps how many weekly reports go into the workbook.
const historyLimit = 52

// Export writes the user's workbook to w. Completion rows are bounded by the
// [start, end] day range.
func (e *Exporter) Export(ctx context.Context, w io.Writer, userID, start, end string) error {
	habits, err := e.habits.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	completions, err := e.completions.ListByUserRange(ctx, userID, start, end)
	if err != nil {
		return err
	}
	history, err := e.weekly.History(ctx, userID, historyLimit)
	if err != nil {
		return err
	}

	habitTitles := make(map[int64]string, len(habits))
	for _, h := range habits {
		habitTitles[h.ID] = h.Title
	}

	f := excelize.NewFile()
	defer f.Close()

	// Habits sheet reuses the default first sheet.
	if err := f.SetSheetName("Sheet1", "Habits"); err != nil {
		return fmt.Errorf("failed to rename sheet: %v", err)
	}
	writeRow(f, "Habits", 1, "ID", "Title", "Created")
	for i, h := range habits {
		writeRow(f, "Habits", i+2, h.ID, h.Title, h.CreatedAt)
	}

	if _, err := f.NewSheet("Completions"); err != nil {
		return fmt.Errorf("failed to create sheet: %v", err)
	}
	writeRow(f, "Completions", 1, "Date", "Habit")
	for i, c := range completions {
		title := habitTitles[c.HabitID]
		if title == "" {
			title = fmt.Sprintf("habit %d (deleted)", c.HabitID)
		}
		writeRow(f, "Completions", i+2, c.Date, title)
	}

	if _, err := f.NewSheet("Weekly reports"); err != nil {
		return fmt.Errorf("failed to create sheet: %v", err)
	}
	writeRow(f, "Weekly reports", 1, "Week start", "Score %", "Best streak", "Difficulty", "Summary")
	for i, ws := range history {
		writeRow(f, "Weekly reports", i+2, ws.WeekStart, ws.CompletionPct, ws.StreakCount, string(ws.Difficulty), ws.Summary)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %v", err)
	}
	return nil
}

// writeRow fills one row starting at column A. Cell errors are ignored: the
// coordinates are always valid here.
func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}
