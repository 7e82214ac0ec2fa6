package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/category"
	"bookcatalog-backend/internal/shared/response"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// Create - POST /api/v1/categories (admin)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, category.ErrDuplicateName) {
			response.Conflict(c, "Category already exists")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse())
}

// GetAll - GET /api/v1/categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list categories")
		return
	}

	resp := make([]*category.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, cat.ToResponse())
	}

	response.Success(c, http.StatusOK, resp)
}

// GetBySlug - GET /api/v1/categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, bookCount, err := h.service.GetWithBookCount(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			response.NotFound(c, "Category not found")
			return
		}
		response.InternalServerError(c, "Failed to get category")
		return
	}

	response.Success(c, http.StatusOK, cat.ToDetailResponse(bookCount))
}

// Update - PUT /api/v1/categories/:slug (admin)
func (h *CategoryHandler) Update(c *gin.Context) {
	var req category.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cat, err := h.service.Update(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrCategoryNotFound):
			response.NotFound(c, "Category not found")
		case errors.Is(err, category.ErrDuplicateName):
			response.Conflict(c, "Category already exists")
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, cat.ToResponse())
}

// Delete - DELETE /api/v1/categories/:slug (admin)
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			response.NotFound(c, "Category not found")
			return
		}
		response.InternalServerError(c, "Failed to delete category")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
