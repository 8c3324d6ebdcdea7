package timeoff

import "time"

// CalendarDaysInclusive counts the days from start to end, both included.
// It returns 0 when end is before start.
func CalendarDaysInclusive(start, end time.Time) int {
	s := civilDate(start)
	e := civilDate(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// TotalDays computes the days charged for a request.
func TotalDays(requestType RequestType, start, end time.Time, portion DayPortion) float64 {
	if requestType == RequestTypeMultiDay {
		return float64(CalendarDaysInclusive(start, end))
	}
	if portion == DayPortionAM || portion == DayPortionPM {
		return 0.5
	}
	return 1
}

// civilDate drops the clock and zone so DST shifts cannot skew day counts.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
