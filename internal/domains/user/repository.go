package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access operations for the User domain
type Repository interface {
	// Create inserts the user and their profile in one transaction so
	// an account never exists without a profile row.
	// Errors: ErrEmailTaken on the email unique violation
	Create(ctx context.Context, u *User, p *Profile) (*User, *Profile, error)

	// GetByID returns ErrUserNotFound if no row matches
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail returns ErrUserNotFound if no row matches
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetProfile returns the profile row for a user
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// UpdateProfile persists display_name changes
	UpdateProfile(ctx context.Context, p *Profile) (*Profile, error)

	// UpdateAvatarURL stores the uploaded avatar object URL
	UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error
}
