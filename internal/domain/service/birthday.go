package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"birthdayreminder/internal/apperr"
	"birthdayreminder/internal/domain"
	"birthdayreminder/internal/domain/contract"
	"birthdayreminder/internal/domain/entity"
)

type birthdayService struct {
	dm  contract.DataManager
	log zerolog.Logger
}

func newBirthday(dm contract.DataManager, logger zerolog.Logger) *birthdayService {
	return &birthdayService{
		dm:  dm,
		log: logger.With().Str("component", "birthday").Logger(),
	}
}

// BirthdayInput carries the user-editable fields of a birthday.
type BirthdayInput struct {
	FriendName  string
	BirthDate   time.Time
	FriendEmail string
	Notes       string
	CategoryID  *int64
	IsActive    *bool
}

func (s *birthdayService) Create(userID int64, input BirthdayInput) (*entity.Birthday, error) {
	if strings.TrimSpace(input.FriendName) == "" {
		return nil, apperr.Invalid("friend name is required")
	}
	if input.BirthDate.IsZero() {
		return nil, apperr.Invalid("birth date is required")
	}

	birthday := &entity.Birthday{
		UserID:      userID,
		CategoryID:  s.resolveCategory(userID, input.CategoryID),
		FriendName:  input.FriendName,
		BirthDate:   input.BirthDate,
		FriendEmail: input.FriendEmail,
		Notes:       input.Notes,
		IsActive:    true,
	}
	if input.IsActive != nil {
		birthday.IsActive = *input.IsActive
	}

	if err := s.dm.Birthday().Create(birthday); err != nil {
		return nil, fmt.Errorf("failed to create birthday: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Int64("birthday_id", birthday.ID).Msg("birthday created")
	return birthday, nil
}

func (s *birthdayService) Get(id, userID int64) (*entity.Birthday, error) {
	birthday, err := s.dm.Birthday().GetByIDAndUser(id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get birthday: %w", err)
	}
	if birthday == nil {
		return nil, apperr.NotFound("birthday", id)
	}
	return birthday, nil
}

func (s *birthdayService) List(userID int64) ([]*entity.Birthday, error) {
	return s.dm.Birthday().ListByUser(userID)
}

func (s *birthdayService) ListByCategory(userID, categoryID int64) ([]*entity.Birthday, error) {
	category, err := s.dm.Category().GetByIDAndUser(categoryID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, apperr.NotFound("category", categoryID)
	}
	return s.dm.Birthday().ListByUserAndCategory(userID, categoryID)
}

func (s *birthdayService) Update(id, userID int64, input BirthdayInput) (*entity.Birthday, error) {
	birthday, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	birthday.FriendName = input.FriendName
	birthday.BirthDate = input.BirthDate
	birthday.FriendEmail = input.FriendEmail
	birthday.Notes = input.Notes
	birthday.CategoryID = s.resolveCategory(userID, input.CategoryID)
	if input.IsActive != nil {
		birthday.IsActive = *input.IsActive
	}

	if err := s.dm.Birthday().Update(birthday); err != nil {
		return nil, fmt.Errorf("failed to update birthday: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Int64("birthday_id", id).Msg("birthday updated")
	return birthday, nil
}

func (s *birthdayService) Delete(id, userID int64) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}

	if err := s.dm.Birthday().Delete(id); err != nil {
		return fmt.Errorf("failed to delete birthday: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Int64("birthday_id", id).Msg("birthday deleted")
	return nil
}

// Upcoming returns the user's active birthdays whose next occurrence falls
// within the given number of days, ordered soonest first.
func (s *birthdayService) Upcoming(userID int64, days int, ref time.Time) ([]domain.DueBirthday, error) {
	birthdays, err := s.dm.Birthday().ListActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}

	var upcoming []domain.DueBirthday
	for _, b := range birthdays {
		daysUntil := domain.DaysUntil(b.BirthDate, ref)
		if daysUntil <= days {
			upcoming = append(upcoming, domain.DueBirthday{Birthday: b, DaysUntil: daysUntil})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})

	return upcoming, nil
}

func (s *birthdayService) Search(userID int64, name string) ([]*entity.Birthday, error) {
	return s.dm.Birthday().SearchByName(userID, name)
}

func (s *birthdayService) Count(userID int64) (int64, error) {
	return s.dm.Birthday().CountByUser(userID)
}

// MonthCount is one month's slot in the monthly distribution, in calendar
// order (maps would lose it on serialization).
type MonthCount struct {
	Month string
	Count int
}

// AgeBucket is one bucket of the age distribution, in ascending order.
type AgeBucket struct {
	Range string
	Count int
}

// BirthdayAnalytics aggregates a user's birthdays for the dashboard.
type BirthdayAnalytics struct {
	TotalBirthdays       int64
	ActiveBirthdays      int
	UpcomingIn7Days      int
	UpcomingIn30Days     int
	UpcomingIn90Days     int
	MonthlyDistribution  []MonthCount
	CategoryDistribution map[string]int
	AgeDistribution      []AgeBucket
}

// Analytics computes the dashboard aggregates. Distributions cover all of the
// user's birthdays; the upcoming counters cover active ones only. Ages use the
// stored plain year subtraction, not the turning age.
func (s *birthdayService) Analytics(userID int64, ref time.Time) (*BirthdayAnalytics, error) {
	total, err := s.Count(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count birthdays: %w", err)
	}

	birthdays, err := s.dm.Birthday().ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}

	categories, err := s.dm.Category().ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	analytics := &BirthdayAnalytics{
		TotalBirthdays:       total,
		CategoryDistribution: map[string]int{"Uncategorized": 0},
	}

	var monthly [12]int
	ageBuckets := []AgeBucket{
		{Range: "0-18"},
		{Range: "19-30"},
		{Range: "31-50"},
		{Range: "51-70"},
		{Range: "71+"},
	}

	for _, b := range birthdays {
		monthly[b.BirthDate.Month()-1]++

		name := "Uncategorized"
		if b.CategoryID != nil {
			if n, ok := categoryNames[*b.CategoryID]; ok {
				name = n
			}
		}
		analytics.CategoryDistribution[name]++

		age := domain.CurrentAge(b.BirthDate, ref)
		switch {
		case age <= 18:
			ageBuckets[0].Count++
		case age <= 30:
			ageBuckets[1].Count++
		case age <= 50:
			ageBuckets[2].Count++
		case age <= 70:
			ageBuckets[3].Count++
		default:
			ageBuckets[4].Count++
		}

		if !b.IsActive {
			continue
		}
		analytics.ActiveBirthdays++

		daysUntil := domain.DaysUntil(b.BirthDate, ref)
		if daysUntil <= 7 {
			analytics.UpcomingIn7Days++
		}
		if daysUntil <= 30 {
			analytics.UpcomingIn30Days++
		}
		if daysUntil <= 90 {
			analytics.UpcomingIn90Days++
		}
	}

	analytics.MonthlyDistribution = make([]MonthCount, 12)
	for i, count := range monthly {
		analytics.MonthlyDistribution[i] = MonthCount{
			Month: time.Month(i + 1).String()[:3],
			Count: count,
		}
	}
	analytics.AgeDistribution = ageBuckets

	return analytics, nil
}

// resolveCategory validates that the referenced category belongs to the user;
// an unknown or foreign category silently drops to uncategorized, matching
// the create/update leniency of the API.
func (s *birthdayService) resolveCategory(userID int64, categoryID *int64) *int64 {
	if categoryID == nil {
		return nil
	}
	category, err := s.dm.Category().GetByIDAndUser(*categoryID, userID)
	if err != nil || category == nil {
		return nil
	}
	return categoryID
}
