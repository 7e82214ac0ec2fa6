package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/author"
)

// authorService implements author.Service
type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req.ToEntity())
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	if id == uuid.Nil {
		return nil, author.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetWithBookCount(ctx context.Context, id uuid.UUID) (*author.Author, int, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	bookCount, err := s.repo.GetBookCount(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	return a, bookCount, nil
}

func (s *authorService) GetAll(ctx context.Context, filter author.AuthorFilter) ([]author.Author, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Page < 1 {
		filter.Page = 1
	}
	return s.repo.GetAll(ctx, filter)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *author.UpdateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(a)
	return s.repo.Update(ctx, a)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return author.ErrAuthorNotFound
	}

	// Deleting an author would cascade to their books and reviews.
	// Require the catalog to be cleaned up first.
	bookCount, err := s.repo.GetBookCount(ctx, id)
	if err != nil {
		return err
	}
	if bookCount > 0 {
		return author.ErrAuthorHasBooks
	}

	return s.repo.Delete(ctx, id)
}
