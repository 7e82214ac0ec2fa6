package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxTitleLength = 200
	PageSize       = 10
)

// CreateBookRequest - POST /api/v1/books
type CreateBookRequest struct {
	Title         string          `json:"title"`
	AuthorID      uuid.UUID       `json:"author_id"`
	CategoryIDs   []uuid.UUID     `json:"category_ids"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate *time.Time      `json:"published_date"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.AuthorID, validation.Required, validation.By(uuidNotNil)),
		validation.Field(&r.Price, validation.By(priceInRange)),
	)
}

// UpdateBookRequest - PUT /api/v1/books/:id
// Nil fields are left unchanged. CategoryIDs, when present, replaces
// the whole category set.
type UpdateBookRequest struct {
	Title         *string          `json:"title,omitempty"`
	AuthorID      *uuid.UUID       `json:"author_id,omitempty"`
	CategoryIDs   *[]uuid.UUID     `json:"category_ids,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	PublishedDate *time.Time       `json:"published_date,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, MaxTitleLength)),
	)
}

func uuidNotNil(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}

func priceInRange(value interface{}) error {
	price, _ := value.(decimal.Decimal)
	if price.IsNegative() {
		return validation.NewError("validation_price", "must not be negative")
	}
	// numeric(8,2) caps at six integer digits
	if price.GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return validation.NewError("validation_price", "exceeds maximum value")
	}
	return nil
}

// AuthorRef is the author summary embedded in book responses.
type AuthorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookResponse - list item
type BookResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Author        AuthorRef       `json:"author"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate *time.Time      `json:"published_date,omitempty"`
	CoverURL      *string         `json:"cover_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BookDetailResponse - GET /api/v1/books/:id
// AverageRating covers approved reviews only and is omitted when there
// are none. CanReview is recomputed per request and never cached.
type BookDetailResponse struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Author        AuthorRef       `json:"author"`
	Categories    []CategoryRef   `json:"categories"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PublishedDate *time.Time      `json:"published_date,omitempty"`
	CoverURL      *string         `json:"cover_url,omitempty"`
	AverageRating *float64        `json:"average_rating,omitempty"`
	Reviews       []ReviewItem    `json:"reviews"`
	CanReview     bool            `json:"can_review"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToResponse converts Book to a list item DTO
func (b Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        AuthorRef{ID: b.AuthorID, Name: b.AuthorName},
		Price:         b.Price,
		PublishedDate: b.PublishedDate,
		CoverURL:      b.CoverURL,
		CreatedAt:     b.CreatedAt,
	}
}

// ToEntity converts CreateBookRequest to a Book entity
func (r *CreateBookRequest) ToEntity() *Book {
	return &Book{
		Title:         r.Title,
		AuthorID:      r.AuthorID,
		Description:   r.Description,
		Price:         r.Price,
		PublishedDate: r.PublishedDate,
	}
}

// ApplyToEntity applies UpdateBookRequest to an existing Book
func (r *UpdateBookRequest) ApplyToEntity(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.AuthorID != nil {
		b.AuthorID = *r.AuthorID
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.Price != nil {
		b.Price = *r.Price
	}
	if r.PublishedDate != nil {
		b.PublishedDate = r.PublishedDate
	}
}
