package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"birthdayreminder/internal/apperr"
	"birthdayreminder/internal/domain/contract"
	"birthdayreminder/internal/domain/entity"
)

// defaultCategories are created for every new user at registration.
var defaultCategories = []entity.Category{
	{Name: "Family", Color: "#ef4444"},
	{Name: "Friends", Color: "#3b82f6"},
	{Name: "Work", Color: "#f59e0b"},
	{Name: "Other", Color: "#8b5cf6"},
}

type categoryService struct {
	dm  contract.DataManager
	log zerolog.Logger
}

func newCategory(dm contract.DataManager, logger zerolog.Logger) *categoryService {
	return &categoryService{
		dm:  dm,
		log: logger.With().Str("component", "category").Logger(),
	}
}

func (s *categoryService) List(userID int64) ([]*entity.Category, error) {
	return s.dm.Category().ListByUser(userID)
}

func (s *categoryService) Get(id, userID int64) (*entity.Category, error) {
	category, err := s.dm.Category().GetByIDAndUser(id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, apperr.NotFound("category", id)
	}
	return category, nil
}

func (s *categoryService) Create(userID int64, name, color string) (*entity.Category, error) {
	if name == "" {
		return nil, apperr.Invalid("category name is required")
	}

	exists, err := s.dm.Category().ExistsByUserAndName(userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("category with this name already exists")
	}

	category := &entity.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
	}
	if err := s.dm.Category().Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Int64("category_id", category.ID).Msg("category created")
	return category, nil
}

func (s *categoryService) Update(id, userID int64, name, color string) (*entity.Category, error) {
	category, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if name != "" && name != category.Name {
		exists, err := s.dm.Category().ExistsByUserAndName(userID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if exists {
			return nil, apperr.Conflict("category with this name already exists")
		}
		category.Name = name
	}
	if color != "" {
		category.Color = color
	}

	if err := s.dm.Category().Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

func (s *categoryService) Delete(id, userID int64) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}

	if err := s.dm.Category().Delete(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.log.Info().Int64("user_id", userID).Int64("category_id", id).Msg("category deleted")
	return nil
}

// CreateDefaults seeds the standard category set for a new user. Used by
// registration; failures there abort the enclosing transaction.
func (s *categoryService) CreateDefaults(dm contract.DataManager, userID int64) error {
	for _, c := range defaultCategories {
		category := &entity.Category{
			UserID: userID,
			Name:   c.Name,
			Color:  c.Color,
		}
		if err := dm.Category().Create(category); err != nil {
			return fmt.Errorf("failed to create default category %q: %w", c.Name, err)
		}
	}
	return nil
}
