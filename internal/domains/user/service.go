package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic operations for the User domain
type Service interface {
	// Register creates an account with a bcrypt-hashed password and its
	// profile. Display name falls back to the email local part.
	// Errors: ErrEmailTaken, validation errors from the request DTO
	Register(ctx context.Context, req *RegisterRequest) (*User, *Profile, error)

	// Login verifies credentials and issues an access/refresh pair
	// Errors: ErrInvalidCredentials, ErrAccountDisabled
	Login(ctx context.Context, req *LoginRequest) (*TokenPair, *User, error)

	// Refresh exchanges a valid refresh token for a new token pair
	// Errors: ErrInvalidCredentials, ErrAccountDisabled
	Refresh(ctx context.Context, req *RefreshRequest) (*TokenPair, error)

	// GetMe returns the account and profile of the acting user
	// Errors: ErrUserNotFound
	GetMe(ctx context.Context, userID uuid.UUID) (*User, *Profile, error)

	// UpdateProfile changes the acting user's display name
	// Errors: ErrUserNotFound
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*Profile, error)

	// UploadAvatar stores the avatar image and records its URL
	// Errors: ErrUserNotFound, ErrInvalidAvatar
	UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error)
}

// FileStorage is the slice of object storage the user service needs.
type FileStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
