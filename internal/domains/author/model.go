package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is the domain entity, independent of database/API concerns.
type Author struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"` // Required, max 120 chars
	Bio  string    `json:"bio" db:"bio"`   // Free text, may be empty

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasBio checks if the author has a biography
func (a *Author) HasBio() bool {
	return a.Bio != ""
}
