package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"birthdayreminder/internal/domain"
	"birthdayreminder/internal/domain/contract"
	"birthdayreminder/internal/domain/entity"
)

type settingsRepo struct {
	db dbConn
}

func newSettingsRepo(db dbConn) contract.SettingsRepo {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Create(settings *entity.NotificationSettings) error {
	query := `
		INSERT INTO notification_settings (user_id, lead_days, email_enabled, email_template, notification_time)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		settings.UserID,
		joinLeadDays(settings.LeadDays),
		settings.EmailEnabled,
		settings.EmailTemplate,
		settings.NotificationTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification settings: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	settings.ID = id
	return nil
}

func (r *settingsRepo) GetByUser(userID int64) (*entity.NotificationSettings, error) {
	settings := &entity.NotificationSettings{}
	var leadDays string

	query := `
		SELECT id, user_id, lead_days, email_enabled, email_template, notification_time
		FROM notification_settings
		WHERE user_id = ?
	`

	err := r.db.QueryRow(query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&leadDays,
		&settings.EmailEnabled,
		&settings.EmailTemplate,
		&settings.NotificationTime,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}

	settings.LeadDays = parseLeadDays(leadDays)
	return settings, nil
}

func (r *settingsRepo) Update(settings *entity.NotificationSettings) error {
	query := `
		UPDATE notification_settings
		SET lead_days = ?, email_enabled = ?, email_template = ?, notification_time = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		joinLeadDays(settings.LeadDays),
		settings.EmailEnabled,
		settings.EmailTemplate,
		settings.NotificationTime,
		settings.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification settings: %w", err)
	}

	return nil
}

// Lead days are stored as a comma-joined string ("1,3,7"); the text form only
// exists at this boundary.

func joinLeadDays(days []int) string {
	days = domain.CanonicalLeadDays(days)
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func parseLeadDays(raw string) []int {
	var days []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	return domain.CanonicalLeadDays(days)
}
