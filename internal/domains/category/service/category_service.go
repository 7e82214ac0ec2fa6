package service

import (
	"context"
	"strings"

	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/shared/utils"
)

// categoryService implements category.Service
type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryRequest) (*category.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &category.Category{
		Name: req.Name,
		Slug: utils.GenerateSlug(req.Name),
	})
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, category.ErrCategoryNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *categoryService) GetWithBookCount(ctx context.Context, slug string) (*category.Category, int, error) {
	c, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, 0, err
	}

	bookCount, err := s.repo.GetBookCount(ctx, c.ID)
	if err != nil {
		return nil, 0, err
	}

	return c, bookCount, nil
}

func (s *categoryService) GetAll(ctx context.Context) ([]category.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *categoryService) Update(ctx context.Context, slug string, req *category.UpdateCategoryRequest) (*category.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	c.Slug = utils.GenerateSlug(req.Name)
	return s.repo.Update(ctx, c)
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	c, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}
