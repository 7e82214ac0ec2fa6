package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/review/model"
)

// fakeService implements service.Service with canned behavior
type fakeService struct {
	created  *model.Review
	approved []model.BookReviewItem
	err      error
	moderate struct {
		id       uuid.UUID
		approved bool
	}
}

func (f *fakeService) Create(_ context.Context, bookID, actorID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &model.Review{
		ID: uuid.New(), BookID: bookID, UserID: actorID,
		Rating: req.Rating, Comment: req.Comment,
	}
	return f.created, nil
}

func (f *fakeService) Update(_ context.Context, id, _ uuid.UUID, req *model.UpdateReviewRequest) (*model.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Review{ID: id, Rating: req.Rating, Comment: req.Comment}, nil
}

func (f *fakeService) Delete(_ context.Context, _, _ uuid.UUID) error {
	return f.err
}

func (f *fakeService) ListApprovedForBook(_ context.Context, _ uuid.UUID, _ int) ([]model.BookReviewItem, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.approved, int64(len(f.approved)), nil
}

func (f *fakeService) ListForModeration(_ context.Context, _ model.ModerationFilter) ([]model.ModerationItem, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return []model.ModerationItem{}, 0, nil
}

func (f *fakeService) Moderate(_ context.Context, id uuid.UUID, approved bool) (*model.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.moderate.id = id
	f.moderate.approved = approved
	return &model.Review{ID: id, Approved: approved}, nil
}

func setupRouter(svc *fakeService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReviewHandler(svc)

	r := gin.New()
	authed := r.Group("/", func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set("userID", userID)
		}
		c.Next()
	})
	authed.GET("/books/:id/reviews", h.ListForBook)
	authed.POST("/books/:id/reviews", h.Create)
	authed.PUT("/reviews/:id", h.Update)
	authed.DELETE("/reviews/:id", h.Delete)
	authed.GET("/admin/reviews", h.ListForModeration)
	authed.PUT("/admin/reviews/:id/moderation", h.Moderate)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_Created(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, uuid.New())

	w := doJSON(r, http.MethodPost, "/books/"+uuid.NewString()+"/reviews",
		gin.H{"rating": 5, "comment": "great"})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, 5, svc.created.Rating)
}

func TestCreate_RequiresAuth(t *testing.T) {
	r := setupRouter(&fakeService{}, uuid.Nil)

	w := doJSON(r, http.MethodPost, "/books/"+uuid.NewString()+"/reviews",
		gin.H{"rating": 5, "comment": "great"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreate_InvalidBookID(t *testing.T) {
	r := setupRouter(&fakeService{}, uuid.New())

	w := doJSON(r, http.MethodPost, "/books/not-a-uuid/reviews",
		gin.H{"rating": 5, "comment": "great"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_DuplicateConflict(t *testing.T) {
	r := setupRouter(&fakeService{err: model.ErrAlreadyReviewed}, uuid.New())

	w := doJSON(r, http.MethodPost, "/books/"+uuid.NewString()+"/reviews",
		gin.H{"rating": 5, "comment": "great"})

	assert.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error.Code)
}

func TestUpdate_ForbiddenForNonOwner(t *testing.T) {
	r := setupRouter(&fakeService{err: model.ErrNotOwner}, uuid.New())

	w := doJSON(r, http.MethodPut, "/reviews/"+uuid.NewString(),
		gin.H{"rating": 1, "comment": "mine now"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDelete_NotFound(t *testing.T) {
	r := setupRouter(&fakeService{err: model.ErrReviewNotFound}, uuid.New())

	w := doJSON(r, http.MethodDelete, "/reviews/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListForBook_ReturnsApproved(t *testing.T) {
	svc := &fakeService{approved: []model.BookReviewItem{
		{ID: uuid.New(), Rating: 4, Comment: "solid", ReviewerName: "alice"},
	}}
	r := setupRouter(svc, uuid.Nil)

	w := doJSON(r, http.MethodGet, "/books/"+uuid.NewString()+"/reviews", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []model.BookReviewItem `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "alice", body.Data[0].ReviewerName)
	assert.Equal(t, 1, body.Meta.Total)
}

func TestListForBook_UnknownBook(t *testing.T) {
	r := setupRouter(&fakeService{err: model.ErrBookNotFound}, uuid.Nil)

	w := doJSON(r, http.MethodGet, "/books/"+uuid.NewString()+"/reviews", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestModerate_SetsApproval(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, uuid.New())
	id := uuid.New()

	w := doJSON(r, http.MethodPut, "/admin/reviews/"+id.String()+"/moderation",
		gin.H{"approved": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.moderate.id)
	assert.True(t, svc.moderate.approved)
}

func TestModerate_MissingApproved(t *testing.T) {
	r := setupRouter(&fakeService{}, uuid.New())

	w := doJSON(r, http.MethodPut, "/admin/reviews/"+uuid.NewString()+"/moderation",
		gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListForModeration_BadFilter(t *testing.T) {
	r := setupRouter(&fakeService{}, uuid.New())

	w := doJSON(r, http.MethodGet, "/admin/reviews?approved=maybe", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
