package service

import (
	"time"

	"github.com/rs/zerolog"

	"birthdayreminder/internal/domain/contract"
)

// AuthConfig carries the token settings the auth service needs.
type AuthConfig struct {
	JWTSecret []byte
	TokenTTL  time.Duration
}

type Services struct {
	Auth      *authService
	Birthday  *birthdayService
	Category  *categoryService
	Settings  *settingsService
	Wish      *wishService
	Scheduler *Scheduler
}

func New(dm contract.DataManager, mailer contract.Mailer, logger zerolog.Logger, authCfg AuthConfig) *Services {
	categorySvc := newCategory(dm, logger)

	return &Services{
		Auth:      newAuth(dm, categorySvc, logger, authCfg),
		Birthday:  newBirthday(dm, logger),
		Category:  categorySvc,
		Settings:  newSettings(dm, logger),
		Wish:      newWish(dm, logger),
		Scheduler: NewScheduler(dm, mailer, logger),
	}
}
