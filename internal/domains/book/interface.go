package book

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines data access operations for the Book domain.
// The repository also reads review rows for the detail aggregation so the
// whole detail page comes from one place.
type RepositoryInterface interface {
	// Create inserts the book and its category links in one transaction
	// Errors: ErrAuthorNotFound / ErrCategoryNotFound on FK violations
	Create(ctx context.Context, b *Book, categoryIDs []uuid.UUID) (*Book, error)

	// GetByID returns the book with the author name joined
	// Errors: ErrBookNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// List applies BookFilter, orders by title, and returns one page
	// plus the total match count
	List(ctx context.Context, filter *BookFilter) ([]Book, int64, error)

	// Update persists field changes; a non-nil categoryIDs replaces the
	// category set in the same transaction
	Update(ctx context.Context, b *Book, categoryIDs *[]uuid.UUID) (*Book, error)

	// UpdateCoverURL stores the uploaded cover object URL
	UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error

	// Delete removes the book; reviews and category links cascade
	Delete(ctx context.Context, id uuid.UUID) error

	// GetCategories returns the book's categories ordered by name
	GetCategories(ctx context.Context, bookID uuid.UUID) ([]CategoryRef, error)

	// GetApprovedReviews returns approved reviews with reviewer display
	// names, newest first
	GetApprovedReviews(ctx context.Context, bookID uuid.UUID) ([]ReviewItem, error)

	// GetApprovedRatingAverage returns nil when the book has no approved
	// reviews
	GetApprovedRatingAverage(ctx context.Context, bookID uuid.UUID) (*float64, error)

	// HasUserReviewed reports whether the user has any review for the
	// book, approved or not
	HasUserReviewed(ctx context.Context, bookID, userID uuid.UUID) (bool, error)
}

// ServiceInterface defines business logic operations for the Book domain
type ServiceInterface interface {
	// Create creates a book with category links (admin)
	Create(ctx context.Context, req *CreateBookRequest) (*Book, error)

	// List returns one page of the catalog for the given filter
	List(ctx context.Context, filter BookFilter) ([]Book, int64, error)

	// GetDetail aggregates the detail page. actorID is uuid.Nil for
	// anonymous requests; can_review is false in that case.
	// Errors: ErrBookNotFound
	GetDetail(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*BookDetailResponse, error)

	// Update applies a partial update (admin)
	// Errors: ErrBookNotFound
	Update(ctx context.Context, id uuid.UUID, req *UpdateBookRequest) (*Book, error)

	// UploadCover stores the cover image and records its URL (admin)
	// Errors: ErrBookNotFound, ErrInvalidCover
	UploadCover(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error)

	// Delete removes a book (admin)
	// Errors: ErrBookNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileStorage is the slice of object storage the book service needs.
type FileStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
