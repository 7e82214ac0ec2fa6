package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/book"
)

// fakeRepo is an in-memory book.RepositoryInterface
type fakeRepo struct {
	books      map[uuid.UUID]*book.Book
	categories map[uuid.UUID][]book.CategoryRef
	reviews    map[uuid.UUID][]book.ReviewItem
	avg        map[uuid.UUID]*float64
	reviewedBy map[uuid.UUID]map[uuid.UUID]bool
	listCalls  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		books:      map[uuid.UUID]*book.Book{},
		categories: map[uuid.UUID][]book.CategoryRef{},
		reviews:    map[uuid.UUID][]book.ReviewItem{},
		avg:        map[uuid.UUID]*float64{},
		reviewedBy: map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (f *fakeRepo) Create(_ context.Context, b *book.Book, _ []uuid.UUID) (*book.Book, error) {
	created := *b
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.books[created.ID] = &created
	return &created, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, _ *book.BookFilter) ([]book.Book, int64, error) {
	f.listCalls++
	out := make([]book.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(_ context.Context, b *book.Book, _ *[]uuid.UUID) (*book.Book, error) {
	if _, ok := f.books[b.ID]; !ok {
		return nil, book.ErrBookNotFound
	}
	updated := *b
	updated.UpdatedAt = time.Now()
	f.books[b.ID] = &updated
	return &updated, nil
}

func (f *fakeRepo) UpdateCoverURL(_ context.Context, id uuid.UUID, coverURL string) error {
	b, ok := f.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.CoverURL = &coverURL
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeRepo) GetCategories(_ context.Context, bookID uuid.UUID) ([]book.CategoryRef, error) {
	return f.categories[bookID], nil
}

func (f *fakeRepo) GetApprovedReviews(_ context.Context, bookID uuid.UUID) ([]book.ReviewItem, error) {
	return f.reviews[bookID], nil
}

func (f *fakeRepo) GetApprovedRatingAverage(_ context.Context, bookID uuid.UUID) (*float64, error) {
	return f.avg[bookID], nil
}

func (f *fakeRepo) HasUserReviewed(_ context.Context, bookID, userID uuid.UUID) (bool, error) {
	return f.reviewedBy[bookID][userID], nil
}

// fakeCache is a map-backed cache.Cache without TTL handling
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, _ string) error {
	f.data = map[string][]byte{}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }

type fakeStorage struct {
	uploads map[string][]byte
	deleted []string
}

func (f *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[key] = data
	return "http://storage.local/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.uploads, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func seedBook(repo *fakeRepo, title string) *book.Book {
	b, _ := repo.Create(context.Background(), &book.Book{
		Title:      title,
		AuthorID:   uuid.New(),
		AuthorName: "Frank Herbert",
		Price:      decimal.NewFromFloat(9.99),
	}, nil)
	return b
}

func newService(repo *fakeRepo) book.ServiceInterface {
	return NewBookService(repo, newFakeCache(), &fakeStorage{})
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.Create(context.Background(), &book.CreateBookRequest{
		Title:    "   ",
		AuthorID: uuid.New(),
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &book.CreateBookRequest{
		Title:    "Dune",
		AuthorID: uuid.Nil,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &book.CreateBookRequest{
		Title:    "Dune",
		AuthorID: uuid.New(),
		Price:    decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
}

func TestCreate_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	created, err := svc.Create(context.Background(), &book.CreateBookRequest{
		Title:    "Dune",
		AuthorID: uuid.New(),
		Price:    decimal.NewFromFloat(12.50),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Dune", created.Title)
}

func TestList_UsesCacheOnSecondCall(t *testing.T) {
	repo := newFakeRepo()
	seedBook(repo, "Dune")
	svc := newService(repo)

	_, total, err := svc.List(context.Background(), book.BookFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = svc.List(context.Background(), book.BookFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "second call should be served from cache")
}

func TestGetDetail_NotFound(t *testing.T) {
	svc := newService(newFakeRepo())

	_, err := svc.GetDetail(context.Background(), uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestGetDetail_NoApprovedReviews(t *testing.T) {
	repo := newFakeRepo()
	b := seedBook(repo, "Dune")
	svc := newService(repo)

	detail, err := svc.GetDetail(context.Background(), b.ID, uuid.Nil)
	require.NoError(t, err)

	assert.Nil(t, detail.AverageRating)
	assert.Empty(t, detail.Reviews)
	assert.False(t, detail.CanReview, "anonymous visitors cannot review")
}

func TestGetDetail_CanReviewPerActor(t *testing.T) {
	repo := newFakeRepo()
	b := seedBook(repo, "Dune")
	reviewer := uuid.New()
	newcomer := uuid.New()
	repo.reviewedBy[b.ID] = map[uuid.UUID]bool{reviewer: true}
	svc := newService(repo)

	detail, err := svc.GetDetail(context.Background(), b.ID, reviewer)
	require.NoError(t, err)
	assert.False(t, detail.CanReview, "existing review blocks a second one")

	detail, err = svc.GetDetail(context.Background(), b.ID, newcomer)
	require.NoError(t, err)
	assert.True(t, detail.CanReview)
}

func TestGetDetail_AverageOverApprovedOnly(t *testing.T) {
	repo := newFakeRepo()
	b := seedBook(repo, "Dune")
	avg := 4.5
	repo.avg[b.ID] = &avg
	repo.reviews[b.ID] = []book.ReviewItem{
		{ID: uuid.New(), Rating: 5, Comment: "great", ReviewerName: "alice"},
		{ID: uuid.New(), Rating: 4, Comment: "good", ReviewerName: "bob"},
	}
	svc := newService(repo)

	detail, err := svc.GetDetail(context.Background(), b.ID, uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, detail.AverageRating)
	assert.InDelta(t, 4.5, *detail.AverageRating, 0.001)
	assert.Len(t, detail.Reviews, 2)
}

func TestUpdate_InvalidatesCachedDetail(t *testing.T) {
	repo := newFakeRepo()
	b := seedBook(repo, "Dune")
	svc := newService(repo)

	_, err := svc.GetDetail(context.Background(), b.ID, uuid.Nil)
	require.NoError(t, err)

	newTitle := "Dune Messiah"
	_, err = svc.Update(context.Background(), b.ID, &book.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)

	detail, err := svc.GetDetail(context.Background(), b.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", detail.Title)
}

func TestUploadCover(t *testing.T) {
	repo := newFakeRepo()
	b := seedBook(repo, "Dune")
	storage := &fakeStorage{}
	svc := NewBookService(repo, newFakeCache(), storage)

	_, err := svc.UploadCover(context.Background(), b.ID, []byte{0xFF}, "application/pdf")
	assert.ErrorIs(t, err, book.ErrInvalidCover)

	_, err = svc.UploadCover(context.Background(), uuid.New(), []byte{0xFF}, "image/png")
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	url, err := svc.UploadCover(context.Background(), b.ID, []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CoverURL)
	assert.Equal(t, url, *stored.CoverURL)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	b := seedBook(repo, "Dune")
	svc := newService(repo)

	require.NoError(t, svc.Delete(context.Background(), b.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), b.ID), book.ErrBookNotFound)
}

func TestDelete_RemovesCoverObject(t *testing.T) {
	repo := newFakeRepo()
	storage := &fakeStorage{}
	svc := NewBookService(repo, newFakeCache(), storage)

	withCover := seedBook(repo, "Dune")
	_, err := svc.UploadCover(context.Background(), withCover.ID, []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)

	bare := seedBook(repo, "Dune Messiah")

	require.NoError(t, svc.Delete(context.Background(), withCover.ID))
	assert.Equal(t, []string{"covers/" + withCover.ID.String()}, storage.deleted)

	require.NoError(t, svc.Delete(context.Background(), bare.ID))
	assert.Len(t, storage.deleted, 1, "books without a cover have no object to remove")
}
