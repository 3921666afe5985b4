package database

import (
	"database/sql"
	"fmt"

	"birthdayreminder/internal/domain/contract"
	"birthdayreminder/internal/domain/entity"
)

type categoryRepo struct {
	db dbConn
}

func newCategoryRepo(db dbConn) contract.CategoryRepo {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (user_id, name, color)
		VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query, category.UserID, category.Name, category.Color)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	category.ID = id
	return nil
}

func (r *categoryRepo) GetByIDAndUser(id, userID int64) (*entity.Category, error) {
	category := &entity.Category{}
	query := `
		SELECT id, user_id, name, color, created_at
		FROM categories
		WHERE id = ? AND user_id = ?
	`

	err := r.db.QueryRow(query, id, userID).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Color,
		&category.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

func (r *categoryRepo) ListByUser(userID int64) ([]*entity.Category, error) {
	query := `
		SELECT id, user_id, name, color, created_at
		FROM categories
		WHERE user_id = ?
		ORDER BY name
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		category := &entity.Category{}
		err := rows.Scan(
			&category.ID,
			&category.UserID,
			&category.Name,
			&category.Color,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *categoryRepo) ExistsByUserAndName(userID int64, name string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM categories WHERE user_id = ? AND name = ? COLLATE NOCASE`

	if err := r.db.QueryRow(query, userID, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}

	return count > 0, nil
}

func (r *categoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = ?, color = ?
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, category.Name, category.Color, category.ID); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

func (r *categoryRepo) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
