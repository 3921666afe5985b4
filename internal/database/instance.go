package database

import (
	"context"
	"fmt"

	"birthdayreminder/internal/domain/contract"
)

// instance implements the DataManager interface
type instance struct {
	db           *DB
	userRepo     contract.UserRepo
	birthdayRepo contract.BirthdayRepo
	settingsRepo contract.SettingsRepo
	categoryRepo contract.CategoryRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	return &instance{
		db:           db,
		userRepo:     newUserRepo(db.conn),
		birthdayRepo: newBirthdayRepo(db.conn),
		settingsRepo: newSettingsRepo(db.conn),
		categoryRepo: newCategoryRepo(db.conn),
	}
}

// repoInstancesWithConn creates repository instances with a custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		userRepo:     newUserRepo(db),
		birthdayRepo: newBirthdayRepo(db),
		settingsRepo: newSettingsRepo(db),
		categoryRepo: newCategoryRepo(db),
	}
}

func (i *instance) User() contract.UserRepo {
	return i.userRepo
}

func (i *instance) Birthday() contract.BirthdayRepo {
	return i.birthdayRepo
}

func (i *instance) Settings() contract.SettingsRepo {
	return i.settingsRepo
}

func (i *instance) Category() contract.CategoryRepo {
	return i.categoryRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
