package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/pkg/jwt"
)

const bcryptCost = 12

// userService implements user.Service
type userService struct {
	repo    user.Repository
	jwt     *jwt.Manager
	storage user.FileStorage
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, storage user.FileStorage) user.Service {
	return &userService{
		repo:    repo,
		jwt:     jwtManager,
		storage: storage,
	}
}

func (s *userService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, *user.Profile, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.Create(ctx,
		&user.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         user.RoleUser,
		},
		&user.Profile{
			DisplayName: req.DefaultDisplayName(),
		},
	)
}

func (s *userService) Login(ctx context.Context, req *user.LoginRequest) (*user.TokenPair, *user.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// same error for unknown email and wrong password
			return nil, nil, user.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, user.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, nil, user.ErrAccountDisabled
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}

	return pair, u, nil
}

func (s *userService) Refresh(ctx context.Context, req *user.RefreshRequest) (*user.TokenPair, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, user.ErrAccountDisabled
	}

	return s.issueTokens(u)
}

func (s *userService) issueTokens(u *user.User) (*user.TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &user.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*user.User, *user.Profile, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return u, p, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *user.UpdateProfileRequest) (*user.Profile, error) {
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.DisplayName = req.DisplayName
	return s.repo.UpdateProfile(ctx, p)
}

func (s *userService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	if len(data) == 0 || !strings.HasPrefix(contentType, "image/") {
		return "", user.ErrInvalidAvatar
	}

	key := fmt.Sprintf("avatars/%s", userID)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.repo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}

	return url, nil
}
