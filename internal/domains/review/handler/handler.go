package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/review/model"
	"bookcatalog-backend/internal/domains/review/service"
	"bookcatalog-backend/internal/shared/response"
)

type ReviewHandler struct {
	service service.Service
}

func NewReviewHandler(svc service.Service) *ReviewHandler {
	return &ReviewHandler{service: svc}
}

// actorID reads the authenticated user set by AuthMiddleware
func actorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Create - POST /api/v1/books/:id/reviews (auth)
func (h *ReviewHandler) Create(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	actor, ok := actorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), bookID, actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyReviewed):
			response.Conflict(c, "You have already reviewed this book")
		case errors.Is(err, model.ErrBookNotFound):
			response.NotFound(c, "Book not found")
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse())
}

// Update - PUT /api/v1/reviews/:id (auth, owner)
func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review id")
		return
	}

	actor, ok := actorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrReviewNotFound):
			response.NotFound(c, "Review not found")
		case errors.Is(err, model.ErrNotOwner):
			response.Forbidden(c, "You can only edit your own reviews")
		default:
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}

// Delete - DELETE /api/v1/reviews/:id (auth, owner)
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review id")
		return
	}

	actor, ok := actorID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actor); err != nil {
		switch {
		case errors.Is(err, model.ErrReviewNotFound):
			response.NotFound(c, "Review not found")
		case errors.Is(err, model.ErrNotOwner):
			response.Forbidden(c, "You can only delete your own reviews")
		default:
			response.InternalServerError(c, "Failed to delete review")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListForBook - GET /api/v1/books/:id/reviews?page= (public, approved only)
func (h *ReviewHandler) ListForBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	items, total, err := h.service.ListApprovedForBook(c.Request.Context(), bookID, page)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to list reviews")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Page:  page,
		Limit: model.PageSize,
		Total: int(total),
	})
}

// ListForModeration - GET /api/v1/admin/reviews?approved=&page= (admin)
func (h *ReviewHandler) ListForModeration(c *gin.Context) {
	filter := model.ModerationFilter{}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))

	if v := c.Query("approved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "Invalid approved filter")
			return
		}
		filter.Approved = &approved
	}

	items, total, err := h.service.ListForModeration(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "Failed to list reviews")
		return
	}

	resp := make([]*model.ReviewResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, item.ToResponse())
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{
		Page:  filter.Page,
		Limit: model.PageSize,
		Total: int(total),
	})
}

// Moderate - PUT /api/v1/admin/reviews/:id/moderation (admin)
func (h *ReviewHandler) Moderate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review id")
		return
	}

	var req model.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "approved is required")
		return
	}

	updated, err := h.service.Moderate(c.Request.Context(), id, *req.Approved)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			response.NotFound(c, "Review not found")
			return
		}
		response.InternalServerError(c, "Failed to moderate review")
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}
