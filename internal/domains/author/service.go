package author

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic operations for the Author domain
type Service interface {
	// Create creates a new author
	// Errors: validation errors from the request DTO
	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)

	// GetByID retrieves an author
	// Errors: ErrAuthorNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetWithBookCount retrieves an author plus an aggregated book count
	// Use case: author detail page
	// Errors: ErrAuthorNotFound
	GetWithBookCount(ctx context.Context, id uuid.UUID) (*Author, int, error)

	// GetAll retrieves a paginated author list with optional name search
	GetAll(ctx context.Context, filter AuthorFilter) ([]Author, int64, error)

	// Update applies a partial update
	// Errors: ErrAuthorNotFound
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorRequest) (*Author, error)

	// Delete removes an author without linked books
	// Errors: ErrAuthorNotFound, ErrAuthorHasBooks
	Delete(ctx context.Context, id uuid.UUID) error
}
