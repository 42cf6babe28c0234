package stats

import (
	"time"
)

// DayFormat is the date layout used everywhere dates cross a boundary:
// database columns, JSON payloads and AI prompts.
const DayFormat = "2006-01-02"

// FormatDay renders t as yyyy-MM-dd.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a yyyy-MM-dd string.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// WeekStart returns the Sunday of the week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = startOfDay(t)
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// WeekEnd returns the Saturday of the week containing t, at midnight UTC.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// DaysBetween enumerates every day from start through end inclusive as
// yyyy-MM-dd strings. Returns nil when end is before start.
func DaysBetween(start, end time.Time) []string {
	start = startOfDay(start)
	end = startOfDay(end)
	if end.Before(start) {
		return nil
	}
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDay(d))
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
