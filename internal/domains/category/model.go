package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is a catalog grouping, addressed by a unique URL slug.
type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"` // Required, unique, max 80 chars
	Slug string    `json:"slug" db:"slug"` // Unique, generated from name

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
