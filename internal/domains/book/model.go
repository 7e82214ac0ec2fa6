package book

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book is the catalog entity. AuthorName is populated by joined queries.
type Book struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Title         string          `json:"title" db:"title"` // Required, max 200 chars
	AuthorID      uuid.UUID       `json:"author_id" db:"author_id"`
	AuthorName    string          `json:"author_name" db:"author_name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"` // numeric(8,2)
	PublishedDate *time.Time      `json:"published_date" db:"published_date"`
	CoverURL      *string         `json:"cover_url" db:"cover_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryRef is the category summary attached to a book.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ReviewItem is an approved review as shown on the book detail page.
type ReviewItem struct {
	ID           uuid.UUID `json:"id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ReviewerName string    `json:"reviewer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookFilter carries the list/search criteria. Zero values mean
// "no restriction"; criteria are combined conjunctively.
type BookFilter struct {
	Query        string    // free text across title, author name, category name
	AuthorID     uuid.UUID // exact author restriction
	CategorySlug string    // membership restriction via the join table
	Page         int       // 1-based
}
