// Package dates centralizes the day and month windows used by meal
// planning and spending reports. All windows are in local time: a "day"
// runs from local midnight to the next local midnight.
package dates

import "time"

// Today returns the current day truncated to local midnight.
func Today() time.Time {
	return Midnight(time.Now())
}

// Tomorrow returns local midnight of the day after today.
func Tomorrow() time.Time {
	return Today().AddDate(0, 0, 1)
}

// Midnight truncates t to local midnight of its day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthRange returns the inclusive bounds of a calendar month: the first
// of the month at midnight and the last day at 23:59:59.999.
func MonthRange(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// DateString formats t as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
