package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/shared/response"
)

const maxAvatarSize = 2 << 20 // 2 MB

type UserHandler struct {
	service user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{service: svc}
}

func actorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Register - POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	u, p, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			response.Conflict(c, "Email is already registered")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, user.ToResponse(u, p))
}

// Login - POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tokens, u, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, user.ErrAccountDisabled):
			response.Forbidden(c, "Account is disabled")
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user": gin.H{
			"id":    u.ID,
			"email": u.Email,
			"role":  u.Role,
		},
	})
}

// Refresh - POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req user.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid refresh token")
		case errors.Is(err, user.ErrAccountDisabled):
			response.Forbidden(c, "Account is disabled")
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// GetMe - GET /api/v1/users/me (auth)
func (h *UserHandler) GetMe(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	u, p, err := h.service.GetMe(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalServerError(c, "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, user.ToResponse(u, p))
}

// UpdateMe - PUT /api/v1/users/me (auth)
func (h *UserHandler) UpdateMe(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), actor, &req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, p)
}

// UploadAvatar - POST /api/v1/users/me/avatar (auth, multipart "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "Missing avatar file")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		response.BadRequest(c, "Avatar file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read avatar file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Failed to read avatar file")
		return
	}

	url, err := h.service.UploadAvatar(c.Request.Context(), actor, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidAvatar):
			response.BadRequest(c, "Avatar must be an image")
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(c, "User not found")
		default:
			response.InternalServerError(c, "Failed to upload avatar")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"avatar_url": url})
}
