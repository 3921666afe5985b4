package domain

import (
	"sort"
	"time"

	"birthdayreminder/internal/domain/entity"
)

// DueBirthday pairs a birthday with the days-until value that made it due, so
// the mailer can phrase "today"/"tomorrow"/"in N days" from exactly the value
// that triggered the send.
type DueBirthday struct {
	Birthday  *entity.Birthday
	DaysUntil int
}

// MatchesToday reports whether daysUntil is one of the configured lead days.
func MatchesToday(leadDays []int, daysUntil int) bool {
	for _, d := range leadDays {
		if d == daysUntil {
			return true
		}
	}
	return false
}

// SelectDueBirthdays filters birthdays to those whose days-until-occurrence
// matches one of leadDays, preserving input order.
func SelectDueBirthdays(birthdays []*entity.Birthday, leadDays []int, ref time.Time) []DueBirthday {
	var due []DueBirthday
	for _, b := range birthdays {
		daysUntil := DaysUntil(b.BirthDate, ref)
		if MatchesToday(leadDays, daysUntil) {
			due = append(due, DueBirthday{Birthday: b, DaysUntil: daysUntil})
		}
	}
	return due
}

// CanonicalLeadDays sorts days ascending and drops duplicates. A nil or empty
// input canonicalizes to the single fallback lead day, never to an empty set.
func CanonicalLeadDays(days []int) []int {
	if len(days) == 0 {
		return []int{FallbackLeadDay}
	}

	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

// ValidLeadDay reports whether a lead day is inside the accepted range.
func ValidLeadDay(day int) bool {
	return day >= MinLeadDay && day <= MaxLeadDay
}
