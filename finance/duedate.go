package finance

import (
	"fmt"
	"time"
)

// NextDueDate returns the next calendar date on or after now whose day of
// month matches day. A date in the current month that has already passed
// (or is today) rolls to the following month, including across year
// boundaries. Days that do not exist in the target month clamp to its last
// day, so a due day of 31 bills on Feb 28/29.
func NextDueDate(day int, now time.Time) (time.Time, error) {
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("due day %d out of range 1-31", day)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	candidate := dateWithClampedDay(now.Year(), now.Month(), day, now.Location())
	if !candidate.After(today) {
		next := today.AddDate(0, 1, -now.Day()+1) // first of next month
		candidate = dateWithClampedDay(next.Year(), next.Month(), day, now.Location())
	}
	return candidate, nil
}

func dateWithClampedDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
