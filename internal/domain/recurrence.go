package domain

import "time"

// NextOccurrence projects a birth date onto its next occurrence relative to
// ref: the base month/day in ref's year, or the following year if that date
// has already passed. The result is never before ref's calendar day.
//
// A Feb 29 base date resolves to Feb 28 in non-leap years.
func NextOccurrence(base, ref time.Time) time.Time {
	ref = atMidnight(ref)

	occurrence := withYear(base, ref.Year())
	if occurrence.Before(ref) {
		occurrence = withYear(base, ref.Year()+1)
	}
	return occurrence
}

// DaysUntil returns the number of whole calendar days from ref until the next
// occurrence of base. Zero means the occurrence is today.
func DaysUntil(base, ref time.Time) int {
	ref = atMidnight(ref)
	next := NextOccurrence(base, ref)
	return int(next.Sub(ref).Hours() / 24)
}

// CurrentAge is plain calendar-year subtraction. It does not check whether
// the birthday has already happened this year; reminders add one to show the
// age being turned.
func CurrentAge(base, ref time.Time) int {
	return ref.Year() - base.Year()
}

// withYear rebuilds date in the given year, clamping to the last valid day of
// the month when the day does not exist there (Feb 29 -> Feb 28).
func withYear(date time.Time, year int) time.Time {
	month, day := date.Month(), date.Day()
	projected := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if projected.Month() != month {
		// Normalization rolled into the next month; clamp to the last day.
		projected = time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return projected
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
