package service

import (
	"context"
	"errors"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/internal/slug"
	"github.com/emzola/blogapi/internal/validator"
	"github.com/emzola/blogapi/repository"
)

type categories interface {
	ListCategories(ctx context.Context) ([]*data.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*data.Category, error)
	CreateCategory(ctx context.Context, name string, slugValue *string) (*data.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, name string, slugValue *string) (*data.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// ListCategories service retrieves all categories.
func (s *service) ListCategories(ctx context.Context) ([]*data.Category, error) {
	return s.repo.GetAllCategories(ctx)
}

// GetCategory service retrieves a category record.
func (s *service) GetCategory(ctx context.Context, categoryID int64) (*data.Category, error) {
	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrCategoryNotFound
		default:
			return nil, err
		}
	}
	return category, nil
}

// CreateCategory service creates a category. The name is title-cased and the
// slug is kept when usable, otherwise derived from the name as given.
func (s *service) CreateCategory(ctx context.Context, name string, slugValue *string) (*data.Category, error) {
	category := &data.Category{
		Name: slug.Title(name),
		Slug: slug.ValidateOrCreate(name, slugValue),
	}
	v := validator.New()
	if data.ValidateCategory(v, category); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	exists, err := s.repo.CategoryExists(ctx, category.Name, category.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryAlreadyExists
	}
	err = s.repo.CreateCategory(ctx, category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrCategoryAlreadyExists
		default:
			return nil, err
		}
	}
	return category, nil
}

// UpdateCategory service renames a category.
func (s *service) UpdateCategory(ctx context.Context, categoryID int64, name string, slugValue *string) (*data.Category, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	category.Name = slug.Title(name)
	category.Slug = slug.ValidateOrCreate(category.Name, slugValue)
	v := validator.New()
	if data.ValidateCategory(v, category); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	err = s.repo.UpdateCategory(ctx, category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrCategoryAlreadyExists
		default:
			return nil, err
		}
	}
	return category, nil
}

// DeleteCategory service deletes a category.
func (s *service) DeleteCategory(ctx context.Context, categoryID int64) error {
	err := s.repo.DeleteCategory(ctx, categoryID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrCategoryNotFound
		default:
			return err
		}
	}
	return nil
}
