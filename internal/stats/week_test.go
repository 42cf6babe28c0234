package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekStartIsSunday(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-08-20", "2025-08-17"}, // Wednesday
		{"2025-08-17", "2025-08-17"}, // Sunday maps to itself
		{"2025-08-23", "2025-08-17"}, // Saturday
		{"2025-08-24", "2025-08-24"}, // next Sunday
	}
	for _, c := range cases {
		got := WeekStart(day(c.in))
		assert.Equal(t, c.want, FormatDay(got), "week start of %s", c.in)
		assert.Equal(t, time.Sunday, got.Weekday())
	}
}

func TestWeekEndIsSaturday(t *testing.T) {
	got := WeekEnd(day("2025-08-20"))
	assert.Equal(t, "2025-08-23", FormatDay(got))
	assert.Equal(t, time.Saturday, got.Weekday())
}

func TestDaysBetween(t *testing.T) {
	days := DaysBetween(day("2025-08-17"), day("2025-08-20"))
	require.Equal(t, []string{"2025-08-17", "2025-08-18", "2025-08-19", "2025-08-20"}, days)

	assert.Equal(t, []string{"2025-08-17"}, DaysBetween(day("2025-08-17"), day("2025-08-17")))
	assert.Nil(t, DaysBetween(day("2025-08-18"), day("2025-08-17")))
}

func TestDaysBetweenCrossesMonth(t *testing.T) {
	days := DaysBetween(day("2025-08-30"), day("2025-09-02"))
	require.Equal(t, []string{"2025-08-30", "2025-08-31", "2025-09-01", "2025-09-02"}, days)
}
