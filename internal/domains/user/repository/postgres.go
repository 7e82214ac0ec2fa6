package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/user"
)

// postgresRepository implements user.Repository on pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User, p *user.Profile) (*user.User, *user.Profile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userQuery := `
        INSERT INTO users (email, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, email, password_hash, role, is_active, created_at, updated_at
    `

	var createdUser user.User
	err = tx.QueryRow(ctx, userQuery, u.Email, u.PasswordHash, u.Role).Scan(
		&createdUser.ID, &createdUser.Email, &createdUser.PasswordHash,
		&createdUser.Role, &createdUser.IsActive,
		&createdUser.CreatedAt, &createdUser.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, nil, user.ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	profileQuery := `
        INSERT INTO user_profiles (user_id, display_name)
        VALUES ($1, $2)
        RETURNING user_id, display_name, avatar_url, created_at, updated_at
    `

	var createdProfile user.Profile
	err = tx.QueryRow(ctx, profileQuery, createdUser.ID, p.DisplayName).Scan(
		&createdProfile.UserID, &createdProfile.DisplayName, &createdProfile.AvatarURL,
		&createdProfile.CreatedAt, &createdProfile.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create user profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit user create: %w", err)
	}

	return &createdUser, &createdProfile, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.getUser(ctx, "id = $1", id)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getUser(ctx, "email = $1", email)
}

func (r *postgresRepository) getUser(ctx context.Context, where string, arg any) (*user.User, error) {
	query := fmt.Sprintf(`
        SELECT id, email, password_hash, role, is_active, created_at, updated_at
        FROM users
        WHERE %s
    `, where)

	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	query := `
        SELECT user_id, display_name, avatar_url, created_at, updated_at
        FROM user_profiles
        WHERE user_id = $1
    `

	var p user.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.DisplayName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, p *user.Profile) (*user.Profile, error) {
	query := `
        UPDATE user_profiles
        SET display_name = $2, updated_at = NOW()
        WHERE user_id = $1
        RETURNING user_id, display_name, avatar_url, created_at, updated_at
    `

	var updated user.Profile
	err := r.pool.QueryRow(ctx, query, p.UserID, p.DisplayName).Scan(
		&updated.UserID, &updated.DisplayName, &updated.AvatarURL,
		&updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE user_profiles SET avatar_url = $2, updated_at = NOW() WHERE user_id = $1",
		userID, avatarURL)
	if err != nil {
		return fmt.Errorf("failed to update avatar url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
