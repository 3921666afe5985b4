package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birthdayreminder/internal/domain/entity"
)

func newTestMailer(t *testing.T) *Mailer {
	t.Helper()

	m, err := New(Config{
		Host:    "localhost",
		Port:    2525,
		From:    "noreply@example.com",
		AppName: "Birthday Reminder",
	}, zerolog.Nop())
	require.NoError(t, err)
	return m
}

func TestReminderSubject(t *testing.T) {
	tests := []struct {
		name      string
		daysUntil int
		want      string
	}{
		{
			name:      "Should say today for zero days",
			daysUntil: 0,
			want:      "🎂 TODAY: Bob's birthday!",
		},
		{
			name:      "Should say tomorrow for one day",
			daysUntil: 1,
			want:      "🎂 TOMORROW: Bob's birthday!",
		},
		{
			name:      "Should count days otherwise",
			daysUntil: 7,
			want:      "🎂 7 days until Bob's birthday!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reminderSubject("Bob", tt.daysUntil))
		})
	}
}

func TestReminderBody(t *testing.T) {
	m := newTestMailer(t)

	// Fixed reference instant so date and age assertions are deterministic.
	ref := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	birthday := &entity.Birthday{
		FriendName: "Bob",
		BirthDate:  time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC),
		Notes:      "loves chocolate cake",
	}

	t.Run("Should substitute template placeholders", func(t *testing.T) {
		settings := &entity.NotificationSettings{
			EmailTemplate: "Hi! {friendName} turns {age} on {birthDate}, {daysUntil} days to go.",
		}

		body := m.reminderBody(birthday, settings, 3, ref)

		assert.Contains(t, body, "Hi! Bob turns 37 on March 4, 2026, 3 days to go.")
		assert.NotContains(t, body, "{friendName}")
		assert.NotContains(t, body, "{age}")
	})

	t.Run("Should render from the reference instant, not the wall clock", func(t *testing.T) {
		// A pass that matched daysUntil=1 just before midnight must render
		// the same occurrence even if the wall clock has since rolled over.
		newYear := &entity.Birthday{FriendName: "Carol", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
		eve := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)

		body := m.reminderBody(newYear, &entity.NotificationSettings{}, 1, eve)

		assert.Contains(t, body, "January 1, 2027")
		assert.Contains(t, body, "Turning:</strong> 37 years old")
		assert.Contains(t, body, "Tomorrow")
	})

	t.Run("Should fall back to the default template", func(t *testing.T) {
		body := m.reminderBody(birthday, &entity.NotificationSettings{}, 3, ref)

		assert.Contains(t, body, "Just a reminder that Bob's birthday is coming up")
	})

	t.Run("Should include notes when present", func(t *testing.T) {
		body := m.reminderBody(birthday, &entity.NotificationSettings{}, 3, ref)

		assert.Contains(t, body, "loves chocolate cake")
	})

	t.Run("Should omit the notes block without notes", func(t *testing.T) {
		plain := &entity.Birthday{FriendName: "Carol", BirthDate: birthday.BirthDate}

		body := m.reminderBody(plain, &entity.NotificationSettings{}, 3, ref)

		assert.NotContains(t, body, "📝 Note:")
	})

	t.Run("Should phrase the countdown", func(t *testing.T) {
		assert.Contains(t, m.reminderBody(birthday, &entity.NotificationSettings{}, 0, ref), "Today!")
		assert.Contains(t, m.reminderBody(birthday, &entity.NotificationSettings{}, 1, ref), "Tomorrow")
		assert.Contains(t, m.reminderBody(birthday, &entity.NotificationSettings{}, 7, ref), "7 days")
	})

	t.Run("Should sign with the app name", func(t *testing.T) {
		body := m.reminderBody(birthday, &entity.NotificationSettings{}, 3, ref)

		assert.True(t, strings.Contains(body, "Sent by Birthday Reminder"))
	})
}
