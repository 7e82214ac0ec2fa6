package category

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const MaxNameLength = 80

// CreateCategoryRequest - POST /api/v1/categories
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxNameLength)),
	)
}

// UpdateCategoryRequest - PUT /api/v1/categories/:slug
// Renaming regenerates the slug.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxNameLength)),
	)
}

// CategoryResponse - Category information
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryDetailResponse - Category plus aggregated book count
type CategoryDetailResponse struct {
	CategoryResponse
	BookCount int `json:"book_count"`
}

// ToResponse converts Category to CategoryResponse
func (c Category) ToResponse() *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToDetailResponse converts Category to detailed response with book count
func (c *Category) ToDetailResponse(bookCount int) *CategoryDetailResponse {
	return &CategoryDetailResponse{
		CategoryResponse: *c.ToResponse(),
		BookCount:        bookCount,
	}
}
