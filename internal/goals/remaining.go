package goals

import (
	"time"
)

// ComputeRemainingDays returns the number of whole days left until targetDate, never negative.
func ComputeRemainingDays(targetDate time.Time) int {
	return RemainingDaysAt(time.Now(), targetDate)
}

// RemainingDaysAt is ComputeRemainingDays with an explicit "now".
// now is read in the target's calendar and both are reduced to their date,
// so a target of today or earlier yields 0.
func RemainingDaysAt(now, targetDate time.Time) int {
	today := CalendarDate(now.In(targetDate.Location()))
	days := int((CalendarDate(targetDate).Unix() - today.Unix()) / secondsPerDay)
	if days < 0 {
		return 0
	}
	return days
}

const secondsPerDay = 24 * 60 * 60

// CalendarDate keeps the calendar date of t (in t's own location) at UTC midnight,
// so day arithmetic is not skewed by DST or zone offsets.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
