package entity

import (
	"strconv"
	"strings"
)

const defaultNotificationHour = 8

// NotificationSettings holds a user's reminder preferences. One row per user,
// created lazily with defaults on first settings read.
type NotificationSettings struct {
	ID     int64
	UserID int64

	// LeadDays lists how many days before a birthday to send a reminder.
	// Kept ascending and de-duplicated; see domain.CanonicalLeadDays.
	LeadDays []int

	EmailEnabled  bool
	EmailTemplate string

	// NotificationTime is the preferred send time in "HH:MM" form. Only the
	// hour is used by the scheduler.
	NotificationTime string
}

// PreferredHour parses the hour out of NotificationTime. Any malformed or
// empty value degrades to the default hour (8 AM) instead of failing, so one
// bad setting cannot silently disable a user's notifications.
func (s *NotificationSettings) PreferredHour() int {
	t := strings.TrimSpace(s.NotificationTime)
	if t == "" {
		return defaultNotificationHour
	}

	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return defaultNotificationHour
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return defaultNotificationHour
	}
	if minute, err := strconv.Atoi(parts[1]); err != nil || minute < 0 || minute > 59 {
		return defaultNotificationHour
	}

	return hour
}
