package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access operations for the Author domain
type Repository interface {
	// Create inserts a new author and returns it with ID and timestamps
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound if no row matches
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetAll retrieves a page of authors ordered by name.
	// Search is a case-insensitive partial match on name.
	// Returns the page plus the total count for pagination.
	GetAll(ctx context.Context, filter AuthorFilter) ([]Author, int64, error)

	// Update persists name/bio changes and refreshes updated_at
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete removes the author. Books by the author cascade at the
	// schema level; the service decides whether that is allowed.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetBookCount returns the number of books by the author
	GetBookCount(ctx context.Context, authorID uuid.UUID) (int, error)
}
