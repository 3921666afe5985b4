package database

import (
	"database/sql"
	"fmt"

	"birthdayreminder/internal/domain/contract"
	"birthdayreminder/internal/domain/entity"
)

const birthdayColumns = `id, user_id, category_id, friend_name, birth_date,
		friend_email, notes, is_active, created_at, updated_at`

type birthdayRepo struct {
	db dbConn
}

func newBirthdayRepo(db dbConn) contract.BirthdayRepo {
	return &birthdayRepo{db: db}
}

func (r *birthdayRepo) Create(birthday *entity.Birthday) error {
	query := `
		INSERT INTO birthdays (user_id, category_id, friend_name, birth_date, friend_email, notes, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		birthday.UserID,
		birthday.CategoryID,
		birthday.FriendName,
		birthday.BirthDate,
		birthday.FriendEmail,
		birthday.Notes,
		birthday.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create birthday: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	birthday.ID = id
	return nil
}

func (r *birthdayRepo) GetByIDAndUser(id, userID int64) (*entity.Birthday, error) {
	query := `
		SELECT ` + birthdayColumns + `
		FROM birthdays
		WHERE id = ? AND user_id = ?
	`

	birthday, err := scanBirthday(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get birthday: %w", err)
	}

	return birthday, nil
}

func (r *birthdayRepo) ListByUser(userID int64) ([]*entity.Birthday, error) {
	query := `
		SELECT ` + birthdayColumns + `
		FROM birthdays
		WHERE user_id = ?
		ORDER BY strftime('%m-%d', birth_date)
	`

	return r.list(query, userID)
}

func (r *birthdayRepo) ListActiveByUser(userID int64) ([]*entity.Birthday, error) {
	query := `
		SELECT ` + birthdayColumns + `
		FROM birthdays
		WHERE user_id = ? AND is_active = 1
		ORDER BY strftime('%m-%d', birth_date)
	`

	return r.list(query, userID)
}

func (r *birthdayRepo) ListByUserAndCategory(userID, categoryID int64) ([]*entity.Birthday, error) {
	query := `
		SELECT ` + birthdayColumns + `
		FROM birthdays
		WHERE user_id = ? AND category_id = ?
		ORDER BY strftime('%m-%d', birth_date)
	`

	return r.list(query, userID, categoryID)
}

func (r *birthdayRepo) SearchByName(userID int64, name string) ([]*entity.Birthday, error) {
	query := `
		SELECT ` + birthdayColumns + `
		FROM birthdays
		WHERE user_id = ? AND friend_name LIKE ? COLLATE NOCASE
		ORDER BY strftime('%m-%d', birth_date)
	`

	return r.list(query, userID, "%"+name+"%")
}

func (r *birthdayRepo) Update(birthday *entity.Birthday) error {
	query := `
		UPDATE birthdays
		SET category_id = ?, friend_name = ?, birth_date = ?, friend_email = ?,
			notes = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		birthday.CategoryID,
		birthday.FriendName,
		birthday.BirthDate,
		birthday.FriendEmail,
		birthday.Notes,
		birthday.IsActive,
		birthday.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update birthday: %w", err)
	}

	return nil
}

func (r *birthdayRepo) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM birthdays WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete birthday: %w", err)
	}
	return nil
}

func (r *birthdayRepo) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM birthdays WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count birthdays: %w", err)
	}
	return count, nil
}

func (r *birthdayRepo) list(query string, args ...interface{}) ([]*entity.Birthday, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	defer rows.Close()

	var birthdays []*entity.Birthday
	for rows.Next() {
		birthday, err := scanBirthday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan birthday: %w", err)
		}
		birthdays = append(birthdays, birthday)
	}

	return birthdays, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBirthday(row rowScanner) (*entity.Birthday, error) {
	birthday := &entity.Birthday{}
	var categoryID sql.NullInt64
	var friendEmail, notes sql.NullString

	err := row.Scan(
		&birthday.ID,
		&birthday.UserID,
		&categoryID,
		&birthday.FriendName,
		&birthday.BirthDate,
		&friendEmail,
		&notes,
		&birthday.IsActive,
		&birthday.CreatedAt,
		&birthday.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		birthday.CategoryID = &categoryID.Int64
	}
	birthday.FriendEmail = friendEmail.String
	birthday.Notes = notes.String

	return birthday, nil
}
