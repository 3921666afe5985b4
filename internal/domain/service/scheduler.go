package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"birthdayreminder/internal/apperr"
	"birthdayreminder/internal/domain"
	"birthdayreminder/internal/domain/contract"
)

// PassSummary reports the outcome of one scheduling pass. It lives only for
// the duration of the pass and is never persisted.
type PassSummary struct {
	Sent             int
	Failed           int
	SkippedWrongHour int
	SkippedDisabled  int
}

// Scheduler runs the hourly notification pass: for every user whose preferred
// hour matches the current hour, it finds active birthdays whose days-until
// value is in the user's lead-day set and hands each one to the mailer.
//
// The scheduler holds no state between passes and takes no locks; the caller
// must not run two passes concurrently.
type Scheduler struct {
	dm     contract.DataManager
	mailer contract.Mailer
	log    zerolog.Logger
}

func NewScheduler(dm contract.DataManager, mailer contract.Mailer, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		dm:     dm,
		mailer: mailer,
		log:    logger.With().Str("component", "scheduler").Logger(),
	}
}

// RunPass executes one scheduling pass against the given instant. The
// reference date and hour are snapshotted once so every user is judged
// against the same instant even if the pass is slow. No error escapes a
// pass: store or mailer failures are counted, logged and isolated to the
// user or birthday that produced them.
func (s *Scheduler) RunPass(now time.Time) PassSummary {
	refHour := now.Hour()

	s.log.Info().
		Time("reference", now).
		Int("hour", refHour).
		Msg("starting notification pass")

	var summary PassSummary

	userIDs, err := s.dm.User().ListIDs()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list users, aborting pass")
		return summary
	}

	for _, userID := range userIDs {
		if err := s.processUser(userID, now, refHour, &summary); err != nil {
			// The user produced zero sends this pass; everyone else
			// is unaffected.
			s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to process user")
		}
	}

	s.log.Info().
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Int("skipped_wrong_hour", summary.SkippedWrongHour).
		Int("skipped_disabled", summary.SkippedDisabled).
		Msg("notification pass completed")

	return summary
}

func (s *Scheduler) processUser(userID int64, ref time.Time, refHour int, summary *PassSummary) error {
	settings, err := s.dm.Settings().GetByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Absent settings are treated as disabled. Auto-creating defaults is the
	// settings API's job, not the scheduler's.
	if settings == nil || !settings.EmailEnabled {
		summary.SkippedDisabled++
		s.log.Debug().Int64("user_id", userID).Msg("notifications disabled")
		return nil
	}

	// Checked before loading any birthdays to keep the common case cheap.
	if settings.PreferredHour() != refHour {
		summary.SkippedWrongHour++
		s.log.Debug().
			Int64("user_id", userID).
			Int("preferred_hour", settings.PreferredHour()).
			Msg("not this user's notification hour")
		return nil
	}

	user, err := s.dm.User().GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil
	}

	birthdays, err := s.dm.Birthday().ListActiveByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to load birthdays: %w", err)
	}

	due := domain.SelectDueBirthdays(birthdays, settings.LeadDays, ref)

	for _, d := range due {
		if err := s.mailer.SendReminder(user, d.Birthday, settings, d.DaysUntil, ref); err != nil {
			summary.Failed++
			s.log.Error().Err(err).
				Int64("user_id", userID).
				Int64("birthday_id", d.Birthday.ID).
				Int("days_until", d.DaysUntil).
				Msg("failed to send reminder")
			continue
		}

		summary.Sent++
		s.log.Info().
			Int64("user_id", userID).
			Int64("birthday_id", d.Birthday.ID).
			Int("days_until", d.DaysUntil).
			Msg("reminder sent")
	}

	return nil
}

// SendTestNotification sends a fixed verification message to one user,
// bypassing matching entirely. Used to validate the email transport
// independent of scheduling.
func (s *Scheduler) SendTestNotification(userID int64) error {
	user, err := s.dm.User().GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return apperr.NotFound("user", userID)
	}

	if err := s.mailer.SendTest(user); err != nil {
		return fmt.Errorf("failed to send test notification: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Msg("test notification sent")
	return nil
}
