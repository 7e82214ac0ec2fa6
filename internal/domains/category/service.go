package category

import (
	"context"
)

// Service defines business logic operations for the Category domain
type Service interface {
	// Create creates a category with a slug generated from the name
	// Errors: ErrDuplicateName, validation errors from the request DTO
	Create(ctx context.Context, req *CreateCategoryRequest) (*Category, error)

	// GetBySlug retrieves a category by its URL slug
	// Errors: ErrCategoryNotFound
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	// GetWithBookCount retrieves a category plus an aggregated book count
	// Errors: ErrCategoryNotFound
	GetWithBookCount(ctx context.Context, slug string) (*Category, int, error)

	// GetAll returns every category ordered by name
	GetAll(ctx context.Context) ([]Category, error)

	// Update renames a category, regenerating its slug
	// Errors: ErrCategoryNotFound, ErrDuplicateName
	Update(ctx context.Context, slug string, req *UpdateCategoryRequest) (*Category, error)

	// Delete removes a category; books keep existing without the link
	// Errors: ErrCategoryNotFound
	Delete(ctx context.Context, slug string) error
}
