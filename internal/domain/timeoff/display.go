package timeoff

import (
	"strconv"
	"time"

	"github.com/goodsign/monday"
)

const longDateLayout = "2 de January de 2006"

// FormatDuration renders a day count as "1 día" or "<n> días", with the
// half-day suffix for morning and afternoon requests.
func FormatDuration(totalDays float64, portion *DayPortion) string {
	var s string
	if totalDays == 1 {
		s = "1 día"
	} else {
		s = strconv.FormatFloat(totalDays, 'f', -1, 64) + " días"
	}

	if portion != nil {
		switch *portion {
		case DayPortionAM:
			s += " (Mañana)"
		case DayPortionPM:
			s += " (Tarde)"
		}
	}
	return s
}

// FormatDate renders a Spanish long date, e.g. "10 de septiembre de 2025".
func FormatDate(t time.Time) string {
	return monday.Format(t, longDateLayout, monday.LocaleEsES)
}

// FormatDateRange renders a single date when start and end fall on the same
// day, otherwise "<start> - <end>".
func FormatDateRange(start time.Time, end *time.Time) string {
	if end == nil || civilDate(*end).Equal(civilDate(start)) {
		return FormatDate(start)
	}
	return FormatDate(start) + " - " + FormatDate(*end)
}
