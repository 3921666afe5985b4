package contract

import (
	"time"

	"birthdayreminder/internal/domain/entity"
)

// Mailer sends reminder emails. The scheduler only decides whether and when
// to send; formatting and transport live behind this interface so tests can
// mock it and transports can be swapped.
type Mailer interface {
	// SendReminder delivers one reminder for one (user, birthday, lead-day)
	// triple. daysUntil and ref are passed through explicitly so the rendered
	// date, age and wording all match exactly what triggered the send.
	SendReminder(user *entity.User, birthday *entity.Birthday, settings *entity.NotificationSettings, daysUntil int, ref time.Time) error

	// SendTest delivers a fixed verification message, bypassing matching.
	SendTest(user *entity.User) error
}
