package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const MaxNameLength = 120

// CreateAuthorRequest - POST /api/v1/authors
type CreateAuthorRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxNameLength)),
	)
}

// UpdateAuthorRequest - PUT /api/v1/authors/:id
// Nil fields are left unchanged.
type UpdateAuthorRequest struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, MaxNameLength)),
	)
}

// AuthorResponse - Basic author information
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorDetailResponse - Author plus aggregated book count
type AuthorDetailResponse struct {
	AuthorResponse
	BookCount int `json:"book_count"`
}

// AuthorFilter - Query parameters for listing
type AuthorFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
}

// ToResponse converts Author entity to AuthorResponse DTO
func (a Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToDetailResponse converts Author to detailed response with book count
func (a *Author) ToDetailResponse(bookCount int) *AuthorDetailResponse {
	return &AuthorDetailResponse{
		AuthorResponse: *a.ToResponse(),
		BookCount:      bookCount,
	}
}

// ToEntity converts CreateAuthorRequest to an Author entity
func (r *CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		Name: r.Name,
		Bio:  r.Bio,
	}
}

// ApplyToEntity applies UpdateAuthorRequest to an existing Author
func (r *UpdateAuthorRequest) ApplyToEntity(a *Author) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Bio != nil {
		a.Bio = *r.Bio
	}
}
