package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emzola/blogapi/data"
)

type categories interface {
	GetAllCategories(ctx context.Context) ([]*data.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*data.Category, error)
	CategoryExists(ctx context.Context, name, slug string) (bool, error)
	CreateCategory(ctx context.Context, category *data.Category) error
	UpdateCategory(ctx context.Context, category *data.Category) error
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// GetAllCategories retrieves all categories ordered by name.
func (r *repository) GetAllCategories(ctx context.Context) ([]*data.Category, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		ORDER BY name`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := []*data.Category{}
	for rows.Next() {
		var category data.Category
		err := rows.Scan(&category.ID, &category.Name, &category.Slug)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory retrieves a category record.
func (r *repository) GetCategory(ctx context.Context, categoryID int64) (*data.Category, error) {
	if categoryID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var category data.Category
	err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &category, nil
}

// CategoryExists reports whether a category uses the name or the slug.
func (r *repository) CategoryExists(ctx context.Context, name, slug string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1 OR slug = $2)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	var exists bool
	err := r.db.QueryRowContext(ctx, query, name, slug).Scan(&exists)
	return exists, err
}

// CreateCategory creates a category record.
func (r *repository) CreateCategory(ctx context.Context, category *data.Category) error {
	query := `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// UpdateCategory updates the name and slug of a category record.
func (r *repository) UpdateCategory(ctx context.Context, category *data.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2
		WHERE id = $3
		RETURNING id`
	args := []any{category.Name, category.Slug, category.ID}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&category.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case isUniqueViolation(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// DeleteCategory deletes a category record together with its posts.
func (r *repository) DeleteCategory(ctx context.Context, categoryID int64) error {
	if categoryID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM categories
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, categoryID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
