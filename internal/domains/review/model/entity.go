package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating of a book. It starts unapproved and only
// becomes publicly visible after moderation.
type Review struct {
	ID     uuid.UUID `json:"id"`
	BookID uuid.UUID `json:"book_id"`
	UserID uuid.UUID `json:"user_id"`

	Rating  int    `json:"rating"` // 1-5
	Comment string `json:"comment"`

	Approved bool `json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy checks whether the user wrote this review
func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}
