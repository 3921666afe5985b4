package service

import (
	"fmt"
	"strings"
	"time"

	"birthdayreminder/internal/domain"
)

// ExportICal renders the user's active birthdays as a VCALENDAR document.
// Each birthday becomes a yearly-recurring all-day event anchored at its
// next occurrence relative to ref.
func (s *birthdayService) ExportICal(userID int64, ref time.Time) (string, error) {
	s.log.Info().Int64("user_id", userID).Msg("exporting birthdays to iCal")

	birthdays, err := s.dm.Birthday().ListActiveByUser(userID)
	if err != nil {
		return "", fmt.Errorf("failed to list birthdays: %w", err)
	}

	categories, err := s.dm.Category().ListByUser(userID)
	if err != nil {
		return "", fmt.Errorf("failed to list categories: %w", err)
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	var ical strings.Builder
	ical.WriteString("BEGIN:VCALENDAR\r\n")
	ical.WriteString("VERSION:2.0\r\n")
	ical.WriteString("PRODID:-//Birthday Reminder//EN\r\n")
	ical.WriteString("CALSCALE:GREGORIAN\r\n")
	ical.WriteString("METHOD:PUBLISH\r\n")
	ical.WriteString("X-WR-CALNAME:Birthdays\r\n")

	for _, b := range birthdays {
		upcoming := domain.NextOccurrence(b.BirthDate, ref)
		age := domain.CurrentAge(b.BirthDate, ref) + 1

		uid := fmt.Sprintf("birthday-%d-%d@birthdayreminder", b.ID, upcoming.Year())
		summary := b.FriendName + "'s Birthday"
		description := fmt.Sprintf("%s is turning %d", b.FriendName, age)
		if b.Notes != "" {
			description += "\n\nNotes: " + b.Notes
		}

		ical.WriteString("BEGIN:VEVENT\r\n")
		ical.WriteString("UID:" + uid + "\r\n")
		ical.WriteString("DTSTART;VALUE=DATE:" + formatICalDate(upcoming) + "\r\n")
		ical.WriteString("DTEND;VALUE=DATE:" + formatICalDate(upcoming.AddDate(0, 0, 1)) + "\r\n")
		ical.WriteString("SUMMARY:" + escapeICalText(summary) + "\r\n")
		ical.WriteString("DESCRIPTION:" + escapeICalText(description) + "\r\n")
		ical.WriteString("RRULE:FREQ=YEARLY\r\n")
		ical.WriteString("TRANSP:TRANSPARENT\r\n")

		if b.CategoryID != nil {
			if name, ok := categoryNames[*b.CategoryID]; ok {
				ical.WriteString("CATEGORIES:" + name + "\r\n")
			}
		}

		ical.WriteString("END:VEVENT\r\n")
	}

	ical.WriteString("END:VCALENDAR\r\n")
	return ical.String(), nil
}

func formatICalDate(date time.Time) string {
	return fmt.Sprintf("%04d%02d%02d", date.Year(), int(date.Month()), date.Day())
}

func escapeICalText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}
