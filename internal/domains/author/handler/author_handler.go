package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// Create - POST /api/v1/authors (admin)
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, a.ToResponse())
}

// GetByID - GET /api/v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author id")
		return
	}

	a, bookCount, err := h.service.GetWithBookCount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			response.NotFound(c, "Author not found")
			return
		}
		response.InternalServerError(c, "Failed to get author")
		return
	}

	response.Success(c, http.StatusOK, a.ToDetailResponse(bookCount))
}

// GetAll - GET /api/v1/authors?search=&page=
func (h *AuthorHandler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	filter := author.AuthorFilter{
		Search: c.Query("search"),
		Page:   page,
	}

	authors, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "Failed to list authors")
		return
	}

	resp := make([]*author.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		resp = append(resp, a.ToResponse())
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{
		Page:  filter.Page,
		Limit: 10,
		Total: int(total),
	})
}

// Update - PUT /api/v1/authors/:id (admin)
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author id")
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			response.NotFound(c, "Author not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// Delete - DELETE /api/v1/authors/:id (admin)
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, author.ErrAuthorNotFound):
			response.NotFound(c, "Author not found")
		case errors.Is(err, author.ErrAuthorHasBooks):
			response.Conflict(c, "Author still has books")
		default:
			response.InternalServerError(c, "Failed to delete author")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
