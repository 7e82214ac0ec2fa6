package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/logger"
)

const (
	listCacheKeyPrefix   = "books:list:"
	detailCacheKeyPrefix = "books:detail:"
	cacheTTL             = 5 * time.Minute
)

// listPage is the cached shape of one catalog page
type listPage struct {
	Books []book.Book `json:"books"`
	Total int64       `json:"total"`
}

// bookService implements book.ServiceInterface
type bookService struct {
	repo    book.RepositoryInterface
	cache   cache.Cache
	storage book.FileStorage
}

func NewBookService(repo book.RepositoryInterface, c cache.Cache, storage book.FileStorage) book.ServiceInterface {
	return &bookService{
		repo:    repo,
		cache:   c,
		storage: storage,
	}
}

func (s *bookService) Create(ctx context.Context, req *book.CreateBookRequest) (*book.Book, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity(), req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return created, nil
}

func (s *bookService) List(ctx context.Context, filter book.BookFilter) ([]book.Book, int64, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Page < 1 {
		filter.Page = 1
	}

	cacheKey := listCacheKey(filter)
	var page listPage
	if found, err := s.cache.Get(ctx, cacheKey, &page); err == nil && found {
		return page.Books, page.Total, nil
	}

	books, total, err := s.repo.List(ctx, &filter)
	if err != nil {
		return nil, 0, err
	}

	if err := s.cache.Set(ctx, cacheKey, listPage{Books: books, Total: total}, cacheTTL); err != nil {
		logger.Warn("failed to cache book list", map[string]interface{}{"error": err.Error()})
	}

	return books, total, nil
}

// GetDetail aggregates the detail page. The shared part is cached;
// can_review depends on the actor and is computed on every request.
func (s *bookService) GetDetail(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*book.BookDetailResponse, error) {
	detail, err := s.getSharedDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorID != uuid.Nil {
		reviewed, err := s.repo.HasUserReviewed(ctx, id, actorID)
		if err != nil {
			return nil, err
		}
		detail.CanReview = !reviewed
	}

	return detail, nil
}

// DetailCacheKey is the cache key holding a book's shared detail
// snapshot. The review service deletes it whenever a review mutation
// changes the approved set or the average.
func DetailCacheKey(id uuid.UUID) string {
	return detailCacheKeyPrefix + id.String()
}

func (s *bookService) getSharedDetail(ctx context.Context, id uuid.UUID) (*book.BookDetailResponse, error) {
	cacheKey := DetailCacheKey(id)

	var cached book.BookDetailResponse
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.GetCategories(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.GetApprovedReviews(ctx, id)
	if err != nil {
		return nil, err
	}

	avg, err := s.repo.GetApprovedRatingAverage(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &book.BookDetailResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        book.AuthorRef{ID: b.AuthorID, Name: b.AuthorName},
		Categories:    categories,
		Description:   b.Description,
		Price:         b.Price,
		PublishedDate: b.PublishedDate,
		CoverURL:      b.CoverURL,
		AverageRating: avg,
		Reviews:       reviews,
		CreatedAt:     b.CreatedAt,
	}

	if err := s.cache.Set(ctx, cacheKey, detail, cacheTTL); err != nil {
		logger.Warn("failed to cache book detail", map[string]interface{}{"error": err.Error()})
	}

	return detail, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *book.UpdateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(b)
	updated, err := s.repo.Update(ctx, b, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return updated, nil
}

func (s *bookService) UploadCover(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error) {
	if len(data) == 0 || !strings.HasPrefix(contentType, "image/") {
		return "", book.ErrInvalidCover
	}

	// 404 before upload so a bad id does not leave an orphan object
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("covers/%s", id)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload cover: %w", err)
	}

	if err := s.repo.UpdateCoverURL(ctx, id, url); err != nil {
		return "", err
	}

	s.invalidateCache(ctx)
	return url, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// the cover object is orphaned once the row is gone
	if b.CoverURL != nil {
		key := fmt.Sprintf("covers/%s", id)
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.Warn("failed to delete cover object", map[string]interface{}{
				"book_id": id.String(), "error": err.Error(),
			})
		}
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *bookService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "books:*"); err != nil {
		logger.Warn("failed to invalidate book cache", map[string]interface{}{"error": err.Error()})
	}
}

func listCacheKey(f book.BookFilter) string {
	return fmt.Sprintf("%sq=%s:author=%s:category=%s:page=%d",
		listCacheKeyPrefix, f.Query, f.AuthorID, f.CategorySlug, f.Page)
}
