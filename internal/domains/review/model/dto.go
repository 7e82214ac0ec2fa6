package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateReviewRequest - POST /api/v1/books/:id/reviews
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Required, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.Comment, validation.Required, validation.Length(1, MaxCommentLength)),
	)
}

// UpdateReviewRequest - PUT /api/v1/reviews/:id
// Any accepted edit sends the review back to moderation.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Required, validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.Comment, validation.Required, validation.Length(1, MaxCommentLength)),
	)
}

// ModerateReviewRequest - PUT /api/v1/admin/reviews/:id/moderation
type ModerateReviewRequest struct {
	Approved *bool `json:"approved"`
}

func (r ModerateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Approved, validation.NotNil),
	)
}

// ModerationFilter - GET /api/v1/admin/reviews?approved=&page=
type ModerationFilter struct {
	Approved *bool
	Page     int
}

// ReviewResponse is the owner/moderator view of a review, including
// its moderation state.
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	BookID       uuid.UUID `json:"book_id"`
	BookTitle    string    `json:"book_title,omitempty"`
	UserID       uuid.UUID `json:"user_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse converts Review to ReviewResponse
func (r Review) ToResponse() *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Approved:  r.Approved,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// BookReviewItem is the public view of an approved review on a book's
// review listing.
type BookReviewItem struct {
	ID           uuid.UUID `json:"id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ReviewerName string    `json:"reviewer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// ModerationItem is a review joined with book and reviewer context
// for the moderation queue.
type ModerationItem struct {
	Review
	BookTitle     string `json:"book_title"`
	BookAuthor    string `json:"book_author"`
	ReviewerName  string `json:"reviewer_name"`
	ReviewerEmail string `json:"reviewer_email"`
}

// ToResponse converts ModerationItem to ReviewResponse
func (m ModerationItem) ToResponse() *ReviewResponse {
	resp := m.Review.ToResponse()
	resp.BookTitle = m.BookTitle
	resp.ReviewerName = m.ReviewerName
	return resp
}
