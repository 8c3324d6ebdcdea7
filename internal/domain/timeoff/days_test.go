package timeoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalendarDaysInclusive(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2025-09-10", "2025-09-12", 3},
		{"2025-09-10", "2025-09-10", 1},
		{"2025-12-30", "2026-01-02", 4},
		{"2024-02-28", "2024-03-01", 3},
		{"2025-09-12", "2025-09-10", 0},
	}
	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			assert.Equal(t, tt.want, CalendarDaysInclusive(date(tt.start), date(tt.end)))
		})
	}
}

func TestCalendarDaysInclusive_IgnoresClockAndZone(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// Spans the October DST change.
	start := time.Date(2025, 10, 25, 23, 30, 0, 0, madrid)
	end := time.Date(2025, 10, 27, 0, 15, 0, 0, madrid)
	assert.Equal(t, 3, CalendarDaysInclusive(start, end))
}

func TestTotalDays(t *testing.T) {
	start := date("2025-09-10")
	end := date("2025-09-12")

	assert.Equal(t, 3.0, TotalDays(RequestTypeMultiDay, start, end, ""))
	assert.Equal(t, 1.0, TotalDays(RequestTypeSingleDay, start, start, DayPortionFullDay))
	assert.Equal(t, 0.5, TotalDays(RequestTypeSingleDay, start, start, DayPortionAM))
	assert.Equal(t, 0.5, TotalDays(RequestTypeSingleDay, start, start, DayPortionPM))
	assert.Equal(t, 1.0, TotalDays(RequestTypeSingleDay, start, start, ""))
}
