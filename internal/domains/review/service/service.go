package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	bookservice "bookcatalog-backend/internal/domains/book/service"
	"bookcatalog-backend/internal/domains/review/model"
	"bookcatalog-backend/internal/domains/review/repository"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/logger"
)

// reviewService implements Service
type reviewService struct {
	repo            repository.Repository
	cache           cache.Cache
	notifier        Notifier
	moderationEmail string
}

func NewReviewService(repo repository.Repository, c cache.Cache, notifier Notifier, moderationEmail string) Service {
	return &reviewService{
		repo:            repo,
		cache:           c,
		notifier:        notifier,
		moderationEmail: moderationEmail,
	}
}

func (s *reviewService) Create(ctx context.Context, bookID, actorID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	req.Comment = strings.TrimSpace(req.Comment)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Review{
		BookID:  bookID,
		UserID:  actorID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBookDetail(ctx, created.BookID)
	s.notifySubmitted(ctx, created.ID)
	return created, nil
}

func (s *reviewService) Update(ctx context.Context, id, actorID uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error) {
	req.Comment = strings.TrimSpace(req.Comment)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rev.IsOwnedBy(actorID) {
		return nil, model.ErrNotOwner
	}

	// An edit always goes back through moderation, identical content
	// included. updated_at moves forward either way.
	rev.Rating = req.Rating
	rev.Comment = req.Comment
	rev.Approved = false

	updated, err := s.repo.Update(ctx, rev)
	if err != nil {
		return nil, err
	}

	s.invalidateBookDetail(ctx, updated.BookID)
	return updated, nil
}

func (s *reviewService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !rev.IsOwnedBy(actorID) {
		return model.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateBookDetail(ctx, rev.BookID)
	return nil
}

func (s *reviewService) ListApprovedForBook(ctx context.Context, bookID uuid.UUID, page int) ([]model.BookReviewItem, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListApprovedForBook(ctx, bookID, page)
}

func (s *reviewService) ListForModeration(ctx context.Context, filter model.ModerationFilter) ([]model.ModerationItem, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	return s.repo.ListForModeration(ctx, filter)
}

func (s *reviewService) Moderate(ctx context.Context, id uuid.UUID, approved bool) (*model.Review, error) {
	// the repository reports the prior flag from the same statement that
	// flips it, so concurrent approvals see exactly one transition
	updated, wasApproved, err := s.repo.SetApproved(ctx, id, approved)
	if err != nil {
		return nil, err
	}

	s.invalidateBookDetail(ctx, updated.BookID)

	if approved && !wasApproved {
		s.notifyApproved(ctx, id)
	}

	return updated, nil
}

// invalidateBookDetail drops the cached detail snapshot so approved
// reviews and the average never outlive a mutation. Best effort, a
// cache outage only means a stale page until the TTL runs out.
func (s *reviewService) invalidateBookDetail(ctx context.Context, bookID uuid.UUID) {
	if err := s.cache.Delete(ctx, bookservice.DetailCacheKey(bookID)); err != nil {
		logger.Warn("failed to invalidate book detail cache", map[string]interface{}{
			"book_id": bookID.String(), "error": err.Error(),
		})
	}
}

// notifySubmitted enqueues the moderation email. Failures are logged
// and swallowed so a queue outage never blocks review creation.
func (s *reviewService) notifySubmitted(ctx context.Context, reviewID uuid.UUID) {
	item, err := s.repo.GetModerationItem(ctx, reviewID)
	if err != nil {
		logger.Warn("failed to load review for submission email", map[string]interface{}{
			"review_id": reviewID.String(), "error": err.Error(),
		})
		return
	}

	err = s.notifier.EnqueueReviewSubmitted(ctx, shared.ReviewSubmittedPayload{
		Recipient:     s.moderationEmail,
		ReviewID:      item.ID.String(),
		BookTitle:     item.BookTitle,
		BookAuthor:    item.BookAuthor,
		ReviewerName:  item.ReviewerName,
		ReviewerEmail: item.ReviewerEmail,
		Rating:        item.Rating,
		Comment:       item.Comment,
	})
	if err != nil {
		logger.Warn("failed to enqueue submission email", map[string]interface{}{
			"review_id": reviewID.String(), "error": err.Error(),
		})
	}
}

func (s *reviewService) notifyApproved(ctx context.Context, reviewID uuid.UUID) {
	item, err := s.repo.GetModerationItem(ctx, reviewID)
	if err != nil {
		logger.Warn("failed to load review for approval email", map[string]interface{}{
			"review_id": reviewID.String(), "error": err.Error(),
		})
		return
	}

	err = s.notifier.EnqueueReviewApproved(ctx, shared.ReviewApprovedPayload{
		Recipient:    item.ReviewerEmail,
		ReviewerName: item.ReviewerName,
		BookTitle:    item.BookTitle,
		Rating:       item.Rating,
	})
	if err != nil {
		logger.Warn("failed to enqueue approval email", map[string]interface{}{
			"review_id": reviewID.String(), "error": err.Error(),
		})
	}
}
