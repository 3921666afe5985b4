// Package mailer implements the email transport behind contract.Mailer.
// It formats reminder messages and sends them over SMTP; whether and when a
// reminder goes out is decided by the scheduler, never here.
package mailer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"birthdayreminder/internal/domain"
	"birthdayreminder/internal/domain/entity"
)

const dateFormat = "January 2, 2006"

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
}

type Mailer struct {
	client *mail.Client
	cfg    Config
	log    zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Mailer{
		client: client,
		cfg:    cfg,
		log:    logger.With().Str("component", "mailer").Logger(),
	}, nil
}

// SendReminder sends one birthday reminder. daysUntil and ref are taken as
// given so the rendered date, age and wording match the pass instant that
// triggered the send, even across a midnight boundary.
func (m *Mailer) SendReminder(user *entity.User, birthday *entity.Birthday, settings *entity.NotificationSettings, daysUntil int, ref time.Time) error {
	subject := reminderSubject(birthday.FriendName, daysUntil)
	body := m.reminderBody(birthday, settings, daysUntil, ref)

	if err := m.send(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send reminder to %s: %w", user.Email, err)
	}

	m.log.Debug().
		Str("to", user.Email).
		Str("friend", birthday.FriendName).
		Int("days_until", daysUntil).
		Msg("reminder email sent")
	return nil
}

// SendTest sends a fixed verification message so users can confirm their
// email transport works, independent of scheduling.
func (m *Mailer) SendTest(user *entity.User) error {
	subject := "🎂 Birthday Reminder - Test Notification"
	body := `<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Test Notification</h2>
	<p>This is a test notification from your Birthday Reminder app.</p>
	<p>If you received this email, your notification settings are working correctly!</p>
</body>
</html>`

	if err := m.send(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send test email to %s: %w", user.Email, err)
	}

	m.log.Info().Str("to", user.Email).Msg("test email sent")
	return nil
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return m.client.DialAndSend(msg)
}

func reminderSubject(friendName string, daysUntil int) string {
	switch daysUntil {
	case 0:
		return fmt.Sprintf("🎂 TODAY: %s's birthday!", friendName)
	case 1:
		return fmt.Sprintf("🎂 TOMORROW: %s's birthday!", friendName)
	default:
		return fmt.Sprintf("🎂 %d days until %s's birthday!", daysUntil, friendName)
	}
}

// reminderBody substitutes the user's template placeholders and wraps the
// result in a small HTML shell.
func (m *Mailer) reminderBody(birthday *entity.Birthday, settings *entity.NotificationSettings, daysUntil int, ref time.Time) string {
	upcoming := domain.NextOccurrence(birthday.BirthDate, ref)
	age := domain.CurrentAge(birthday.BirthDate, ref) + 1

	template := settings.EmailTemplate
	if template == "" {
		template = domain.DefaultEmailTemplate
	}

	message := strings.NewReplacer(
		"{friendName}", birthday.FriendName,
		"{birthDate}", upcoming.Format(dateFormat),
		"{age}", strconv.Itoa(age),
		"{daysUntil}", strconv.Itoa(daysUntil),
	).Replace(template)

	var when string
	switch daysUntil {
	case 0:
		when = "Today!"
	case 1:
		when = "Tomorrow"
	default:
		when = fmt.Sprintf("%d days", daysUntil)
	}

	notes := ""
	if birthday.Notes != "" {
		notes = fmt.Sprintf(`<p style="color: #666; font-style: italic;">📝 Note: %s</p>`, birthday.Notes)
	}

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
	<div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; padding: 30px;">
		<h1 style="margin-top: 0;">🎂 Birthday Reminder</h1>
		<h2>%s's Birthday!</h2>
		<p style="font-size: 16px; line-height: 1.6;">%s</p>
		<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px;">
			<p style="margin: 0; color: #666;">
				<strong>📅 Date:</strong> %s<br>
				<strong>🎈 Turning:</strong> %d years old<br>
				<strong>⏰ In:</strong> %s
			</p>
		</div>
		%s
		<p style="color: #999; font-size: 12px;">Sent by %s</p>
	</div>
</body>
</html>`,
		birthday.FriendName,
		message,
		upcoming.Format(dateFormat),
		age,
		when,
		notes,
		m.cfg.AppName,
	)
}
