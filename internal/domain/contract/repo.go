package contract

import (
	"context"

	"birthdayreminder/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	User() UserRepo
	Birthday() BirthdayRepo
	Settings() SettingsRepo
	Category() CategoryRepo
}

// UserRepo defines the contract for the user repository
type UserRepo interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	// ListIDs returns the ids of every registered user. The scheduler loads
	// each user separately so a bad row only affects that user's pass.
	ListIDs() ([]int64, error)
}

// BirthdayRepo defines the contract for the birthday repository
type BirthdayRepo interface {
	Create(birthday *entity.Birthday) error
	GetByIDAndUser(id, userID int64) (*entity.Birthday, error)
	ListByUser(userID int64) ([]*entity.Birthday, error)
	ListActiveByUser(userID int64) ([]*entity.Birthday, error)
	ListByUserAndCategory(userID, categoryID int64) ([]*entity.Birthday, error)
	SearchByName(userID int64, name string) ([]*entity.Birthday, error)
	Update(birthday *entity.Birthday) error
	Delete(id int64) error
	CountByUser(userID int64) (int64, error)
}

// SettingsRepo defines the contract for the notification settings repository
type SettingsRepo interface {
	Create(settings *entity.NotificationSettings) error
	// GetByUser returns nil without error when the user has no settings row.
	GetByUser(userID int64) (*entity.NotificationSettings, error)
	Update(settings *entity.NotificationSettings) error
}

// CategoryRepo defines the contract for the category repository
type CategoryRepo interface {
	Create(category *entity.Category) error
	GetByIDAndUser(id, userID int64) (*entity.Category, error)
	ListByUser(userID int64) ([]*entity.Category, error)
	ExistsByUserAndName(userID int64, name string) (bool, error)
	Update(category *entity.Category) error
	Delete(id int64) error
}
