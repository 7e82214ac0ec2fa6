package service

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/review/model"
	"bookcatalog-backend/internal/shared"
)

// Service defines business logic operations for the Review domain
type Service interface {
	// Create submits a review into moderation for the acting user.
	// A submission notification is enqueued for the moderation address;
	// enqueue failures are logged, never returned.
	// Errors: model.ErrAlreadyReviewed, model.ErrBookNotFound,
	// validation errors from the request DTO
	Create(ctx context.Context, bookID, actorID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error)

	// Update edits the actor's own review. Every accepted edit resets
	// approved to false, even when the content is unchanged.
	// Errors: model.ErrReviewNotFound, model.ErrNotOwner
	Update(ctx context.Context, id, actorID uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error)

	// Delete removes the actor's own review
	// Errors: model.ErrReviewNotFound, model.ErrNotOwner
	Delete(ctx context.Context, id, actorID uuid.UUID) error

	// ListApprovedForBook pages through a book's approved reviews (public)
	// Errors: model.ErrBookNotFound
	ListApprovedForBook(ctx context.Context, bookID uuid.UUID, page int) ([]model.BookReviewItem, int64, error)

	// ListForModeration pages through the moderation queue (admin)
	ListForModeration(ctx context.Context, filter model.ModerationFilter) ([]model.ModerationItem, int64, error)

	// Moderate sets the approval flag (admin). Only the unapproved to
	// approved transition notifies the owner; re-approving an already
	// approved review has no side effects.
	// Errors: model.ErrReviewNotFound
	Moderate(ctx context.Context, id uuid.UUID, approved bool) (*model.Review, error)
}

// Notifier is the slice of the task queue the review service needs.
// The asynq-backed queue client satisfies it.
type Notifier interface {
	EnqueueReviewSubmitted(ctx context.Context, payload shared.ReviewSubmittedPayload) error
	EnqueueReviewApproved(ctx context.Context, payload shared.ReviewApprovedPayload) error
}
