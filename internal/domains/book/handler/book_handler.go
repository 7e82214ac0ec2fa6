package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/internal/shared/utils"
)

const maxCoverSize = 5 << 20 // 5 MB

type BookHandler struct {
	service book.ServiceInterface
}

func NewBookHandler(svc book.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// List - GET /api/v1/books?q=&author=&category=&page=
func (h *BookHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	filter := book.BookFilter{
		Query:        c.Query("q"),
		AuthorID:     utils.ParseStringToUUID(c.Query("author")),
		CategorySlug: c.Query("category"),
		Page:         page,
	}

	books, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "Failed to list books")
		return
	}

	resp := make([]*book.BookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, b.ToResponse())
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{
		Page:  filter.Page,
		Limit: book.PageSize,
		Total: int(total),
	})
}

// GetByID - GET /api/v1/books/:id
// With a valid token, can_review reflects the caller; otherwise false.
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	actorID := uuid.Nil
	if v, ok := c.Get("userID"); ok {
		if uid, ok := v.(uuid.UUID); ok {
			actorID = uid
		}
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id, actorID)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to get book")
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// Create - POST /api/v1/books (admin)
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse())
}

// Update - PUT /api/v1/books/:id (admin)
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	var req book.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}

// UploadCover - POST /api/v1/books/:id/cover (admin, multipart "cover")
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "Missing cover file")
		return
	}
	if fileHeader.Size > maxCoverSize {
		response.BadRequest(c, "Cover file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read cover file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Failed to read cover file")
		return
	}

	url, err := h.service.UploadCover(c.Request.Context(), id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, book.ErrBookNotFound):
			response.NotFound(c, "Book not found")
		case errors.Is(err, book.ErrInvalidCover):
			response.BadRequest(c, "Cover must be an image")
		default:
			response.InternalServerError(c, "Failed to upload cover")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cover_url": url})
}

// Delete - DELETE /api/v1/books/:id (admin)
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to delete book")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
