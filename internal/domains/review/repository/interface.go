package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/review/model"
)

// Repository defines data access operations for the Review domain
type Repository interface {
	// Create inserts a new review in the unapproved state
	// Errors: model.ErrAlreadyReviewed on the (book,user) unique
	// violation, model.ErrBookNotFound on the book FK violation
	Create(ctx context.Context, r *model.Review) (*model.Review, error)

	// GetByID returns model.ErrReviewNotFound if no row matches
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// Update persists rating/comment/approved and refreshes updated_at
	Update(ctx context.Context, r *model.Review) (*model.Review, error)

	// SetApproved flips the moderation flag only, leaving updated_at
	// for content edits. The returned bool is the flag's value before
	// the update, read atomically with it.
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) (*model.Review, bool, error)

	// Delete removes the review
	Delete(ctx context.Context, id uuid.UUID) error

	// ListApprovedForBook returns the approved reviews for a book with
	// reviewer display names, newest first
	// Errors: model.ErrBookNotFound when the book does not exist
	ListApprovedForBook(ctx context.Context, bookID uuid.UUID, page int) ([]model.BookReviewItem, int64, error)

	// ListForModeration returns reviews joined with book and reviewer
	// context, optionally filtered by moderation state, newest first
	ListForModeration(ctx context.Context, filter model.ModerationFilter) ([]model.ModerationItem, int64, error)

	// GetModerationItem loads one review with its joined context, used
	// when enqueueing notification emails
	GetModerationItem(ctx context.Context, id uuid.UUID) (*model.ModerationItem, error)
}
