package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"birthdayreminder/internal/apperr"
	"birthdayreminder/internal/domain"
	"birthdayreminder/internal/domain/contract"
	"birthdayreminder/internal/domain/entity"
)

type settingsService struct {
	dm  contract.DataManager
	log zerolog.Logger
}

func newSettings(dm contract.DataManager, logger zerolog.Logger) *settingsService {
	return &settingsService{
		dm:  dm,
		log: logger.With().Str("component", "settings").Logger(),
	}
}

// UpdateSettingsInput carries a partial settings update; nil fields are left
// unchanged.
type UpdateSettingsInput struct {
	LeadDays         []int
	EmailEnabled     *bool
	EmailTemplate    *string
	NotificationTime *string
}

// Get returns the user's notification settings, creating a row with defaults
// on first access.
func (s *settingsService) Get(userID int64) (*entity.NotificationSettings, error) {
	settings, err := s.dm.Settings().GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if settings == nil {
		settings = defaultSettings(userID)
		if err := s.dm.Settings().Create(settings); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
		s.log.Info().Int64("user_id", userID).Msg("created default notification settings")
	}

	return settings, nil
}

// Update applies a partial settings update. Lead days must be between 0 and
// 30 and are canonicalized to an ascending unique set; an empty list falls
// back to a single default lead day.
func (s *settingsService) Update(userID int64, input UpdateSettingsInput) (*entity.NotificationSettings, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if input.LeadDays != nil {
		for _, day := range input.LeadDays {
			if !domain.ValidLeadDay(day) {
				return nil, apperr.Invalid("notification days must be between %d and %d", domain.MinLeadDay, domain.MaxLeadDay)
			}
		}
		settings.LeadDays = domain.CanonicalLeadDays(input.LeadDays)
	}

	if input.EmailEnabled != nil {
		settings.EmailEnabled = *input.EmailEnabled
	}
	if input.EmailTemplate != nil {
		settings.EmailTemplate = *input.EmailTemplate
	}
	if input.NotificationTime != nil {
		settings.NotificationTime = *input.NotificationTime
	}

	if err := s.dm.Settings().Update(settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Msg("notification settings updated")
	return settings, nil
}

func defaultSettings(userID int64) *entity.NotificationSettings {
	return &entity.NotificationSettings{
		UserID:           userID,
		LeadDays:         domain.CanonicalLeadDays(domain.DefaultLeadDays),
		EmailEnabled:     true,
		EmailTemplate:    domain.DefaultEmailTemplate,
		NotificationTime: domain.DefaultNotificationTime,
	}
}
