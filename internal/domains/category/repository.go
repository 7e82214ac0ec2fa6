package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access operations for the Category domain
type Repository interface {
	// Create inserts a new category
	// Errors: ErrDuplicateName on unique violation of name or slug
	Create(ctx context.Context, c *Category) (*Category, error)

	// GetBySlug returns ErrCategoryNotFound if no row matches
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	// GetAll returns every category ordered by name
	GetAll(ctx context.Context) ([]Category, error)

	// Update persists name/slug changes and refreshes updated_at
	// Errors: ErrCategoryNotFound, ErrDuplicateName
	Update(ctx context.Context, c *Category) (*Category, error)

	// Delete removes the category; book links cascade at the schema level
	Delete(ctx context.Context, id uuid.UUID) error

	// GetBookCount returns the number of books linked to the category
	GetBookCount(ctx context.Context, categoryID uuid.UUID) (int, error)
}
