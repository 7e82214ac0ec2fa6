package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookservice "bookcatalog-backend/internal/domains/book/service"
	"bookcatalog-backend/internal/domains/review/model"
	"bookcatalog-backend/internal/shared"
)

const moderationAddr = "moderation@example.com"

// fakeRepo is an in-memory review repository enforcing the
// one-review-per-user-per-book constraint like the schema does.
type fakeRepo struct {
	reviews map[uuid.UUID]*model.Review
	emails  map[uuid.UUID]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reviews: map[uuid.UUID]*model.Review{},
		emails:  map[uuid.UUID]string{},
	}
}

func (f *fakeRepo) Create(_ context.Context, r *model.Review) (*model.Review, error) {
	for _, existing := range f.reviews {
		if existing.BookID == r.BookID && existing.UserID == r.UserID {
			return nil, model.ErrAlreadyReviewed
		}
	}
	created := *r
	created.ID = uuid.New()
	created.Approved = false
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.reviews[created.ID] = &created
	out := created
	return &out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) Update(_ context.Context, r *model.Review) (*model.Review, error) {
	stored, ok := f.reviews[r.ID]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	stored.Rating = r.Rating
	stored.Comment = r.Comment
	stored.Approved = r.Approved
	stored.UpdatedAt = time.Now()
	copied := *stored
	return &copied, nil
}

func (f *fakeRepo) SetApproved(_ context.Context, id uuid.UUID, approved bool) (*model.Review, bool, error) {
	stored, ok := f.reviews[id]
	if !ok {
		return nil, false, model.ErrReviewNotFound
	}
	wasApproved := stored.Approved
	stored.Approved = approved
	copied := *stored
	return &copied, wasApproved, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return model.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepo) ListApprovedForBook(_ context.Context, bookID uuid.UUID, _ int) ([]model.BookReviewItem, int64, error) {
	items := []model.BookReviewItem{}
	for _, r := range f.reviews {
		if r.BookID != bookID || !r.Approved {
			continue
		}
		items = append(items, model.BookReviewItem{
			ID:           r.ID,
			Rating:       r.Rating,
			Comment:      r.Comment,
			ReviewerName: "alice",
			CreatedAt:    r.CreatedAt,
		})
	}
	return items, int64(len(items)), nil
}

func (f *fakeRepo) ListForModeration(_ context.Context, filter model.ModerationFilter) ([]model.ModerationItem, int64, error) {
	items := []model.ModerationItem{}
	for _, r := range f.reviews {
		if filter.Approved != nil && r.Approved != *filter.Approved {
			continue
		}
		items = append(items, f.toItem(r))
	}
	return items, int64(len(items)), nil
}

func (f *fakeRepo) GetModerationItem(_ context.Context, id uuid.UUID) (*model.ModerationItem, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	item := f.toItem(r)
	return &item, nil
}

func (f *fakeRepo) toItem(r *model.Review) model.ModerationItem {
	return model.ModerationItem{
		Review:        *r,
		BookTitle:     "Dune",
		BookAuthor:    "Frank Herbert",
		ReviewerName:  "alice",
		ReviewerEmail: f.emails[r.UserID],
	}
}

// fakeNotifier records enqueued payloads and optionally fails
type fakeNotifier struct {
	submitted []shared.ReviewSubmittedPayload
	approved  []shared.ReviewApprovedPayload
	fail      error
}

func (f *fakeNotifier) EnqueueReviewSubmitted(_ context.Context, p shared.ReviewSubmittedPayload) error {
	if f.fail != nil {
		return f.fail
	}
	f.submitted = append(f.submitted, p)
	return nil
}

func (f *fakeNotifier) EnqueueReviewApproved(_ context.Context, p shared.ReviewApprovedPayload) error {
	if f.fail != nil {
		return f.fail
	}
	f.approved = append(f.approved, p)
	return nil
}

// fakeCache records only what the service deletes; reads always miss
type fakeCache struct {
	entries map[string]bool
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string]bool{}} }

func (f *fakeCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}

func (f *fakeCache) Set(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	f.entries[key] = true
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.entries, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, _ string) error {
	f.entries = map[string]bool{}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }

func (f *fakeCache) seedDetail(bookID uuid.UUID) string {
	key := bookservice.DetailCacheKey(bookID)
	f.entries[key] = true
	return key
}

func setup() (*fakeRepo, *fakeNotifier, *fakeCache, Service) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	c := newFakeCache()
	return repo, notifier, c, NewReviewService(repo, c, notifier, moderationAddr)
}

func TestCreate_StartsUnapprovedAndNotifiesModeration(t *testing.T) {
	repo, notifier, _, svc := setup()
	bookID, userID := uuid.New(), uuid.New()
	repo.emails[userID] = "alice@example.com"

	created, err := svc.Create(context.Background(), bookID, userID, &model.CreateReviewRequest{
		Rating: 5, Comment: "a classic",
	})
	require.NoError(t, err)

	assert.False(t, created.Approved, "new reviews await moderation")
	require.Len(t, notifier.submitted, 1)
	assert.Equal(t, moderationAddr, notifier.submitted[0].Recipient)
	assert.Equal(t, "alice@example.com", notifier.submitted[0].ReviewerEmail)
	assert.Equal(t, "Dune", notifier.submitted[0].BookTitle)
	assert.Empty(t, notifier.approved)
}

func TestCreate_Validation(t *testing.T) {
	_, _, _, svc := setup()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateReviewRequest{
		Rating: 0, Comment: "fine",
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateReviewRequest{
		Rating: 6, Comment: "fine",
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateReviewRequest{
		Rating: 3, Comment: "   ",
	})
	assert.Error(t, err)
}

func TestCreate_SecondReviewRejected(t *testing.T) {
	_, _, _, svc := setup()
	bookID, userID := uuid.New(), uuid.New()

	_, err := svc.Create(context.Background(), bookID, userID, &model.CreateReviewRequest{
		Rating: 4, Comment: "good"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), bookID, userID, &model.CreateReviewRequest{
		Rating: 5, Comment: "changed my mind"})
	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
}

func TestCreate_EnqueueFailureDoesNotFailCreate(t *testing.T) {
	repo, notifier, _, svc := setup()
	notifier.fail = assert.AnError

	created, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateReviewRequest{
		Rating: 4, Comment: "good"})
	require.NoError(t, err)
	assert.Contains(t, repo.reviews, created.ID)
}

func TestUpdate_ResetsApprovalEvenWhenUnchanged(t *testing.T) {
	repo, _, _, svc := setup()
	bookID, userID := uuid.New(), uuid.New()

	created, err := svc.Create(context.Background(), bookID, userID, &model.CreateReviewRequest{
		Rating: 4, Comment: "good"})
	require.NoError(t, err)

	_, err = svc.Moderate(context.Background(), created.ID, true)
	require.NoError(t, err)
	require.True(t, repo.reviews[created.ID].Approved)

	// same rating, same comment
	updated, err := svc.Update(context.Background(), created.ID, userID, &model.UpdateReviewRequest{
		Rating: 4, Comment: "good"})
	require.NoError(t, err)

	assert.False(t, updated.Approved, "edits always go back through moderation")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdate_OwnerOnly(t *testing.T) {
	_, _, _, svc := setup()
	created, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateReviewRequest{
		Rating: 4, Comment: "good"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, uuid.New(), &model.UpdateReviewRequest{
		Rating: 1, Comment: "sabotage"})
	assert.ErrorIs(t, err, model.ErrNotOwner)
}

func TestDelete_OwnerOnly(t *testing.T) {
	_, _, _, svc := setup()
	owner := uuid.New()
	created, err := svc.Create(context.Background(), uuid.New(), owner, &model.CreateReviewRequest{
		Rating: 4, Comment: "good"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, uuid.New()), model.ErrNotOwner)
	require.NoError(t, svc.Delete(context.Background(), created.ID, owner))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, owner), model.ErrReviewNotFound)
}

func TestModerate_ApprovalNotifiesOwnerOnce(t *testing.T) {
	repo, notifier, _, svc := setup()
	userID := uuid.New()
	repo.emails[userID] = "alice@example.com"

	created, err := svc.Create(context.Background(), uuid.New(), userID, &model.CreateReviewRequest{
		Rating: 5, Comment: "superb"})
	require.NoError(t, err)

	updated, err := svc.Moderate(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Approved)
	require.Len(t, notifier.approved, 1)
	assert.Equal(t, "alice@example.com", notifier.approved[0].Recipient)
	assert.Equal(t, "Dune", notifier.approved[0].BookTitle)

	// approving an approved review is a no-op for side effects
	_, err = svc.Moderate(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.Len(t, notifier.approved, 1)
}

func TestModerate_RejectionIsSilent(t *testing.T) {
	_, notifier, _, svc := setup()
	created, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateReviewRequest{
		Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	_, err = svc.Moderate(context.Background(), created.ID, true)
	require.NoError(t, err)
	require.Len(t, notifier.approved, 1)

	// revoking approval never emails anyone
	updated, err := svc.Moderate(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Approved)
	assert.Len(t, notifier.approved, 1)

	// re-approval after revocation is a fresh transition
	_, err = svc.Moderate(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.Len(t, notifier.approved, 2)
}

func TestReviewMutations_DropCachedBookDetail(t *testing.T) {
	_, _, c, svc := setup()
	bookID, userID := uuid.New(), uuid.New()

	key := c.seedDetail(bookID)
	created, err := svc.Create(context.Background(), bookID, userID, &model.CreateReviewRequest{
		Rating: 4, Comment: "good"})
	require.NoError(t, err)
	assert.NotContains(t, c.entries, key, "create drops the detail snapshot")

	c.seedDetail(bookID)
	_, err = svc.Moderate(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.NotContains(t, c.entries, key,
		"an approved review must show up on the next detail read, not after the TTL")

	c.seedDetail(bookID)
	_, err = svc.Update(context.Background(), created.ID, userID, &model.UpdateReviewRequest{
		Rating: 2, Comment: "on reflection"})
	require.NoError(t, err)
	assert.NotContains(t, c.entries, key,
		"an edit unpublishes the review, the snapshot must not keep serving it")

	c.seedDetail(bookID)
	require.NoError(t, svc.Delete(context.Background(), created.ID, userID))
	assert.NotContains(t, c.entries, key)

	other := c.seedDetail(uuid.New())
	_, err = svc.Create(context.Background(), bookID, userID, &model.CreateReviewRequest{
		Rating: 5, Comment: "rereading changed my mind"})
	require.NoError(t, err)
	assert.Contains(t, c.entries, other, "snapshots of other books stay cached")
}

func TestListApprovedForBook_ExcludesPending(t *testing.T) {
	_, _, _, svc := setup()
	bookID := uuid.New()

	approved, err := svc.Create(context.Background(), bookID, uuid.New(), &model.CreateReviewRequest{
		Rating: 5, Comment: "superb"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bookID, uuid.New(), &model.CreateReviewRequest{
		Rating: 1, Comment: "awaiting a moderator"})
	require.NoError(t, err)

	_, err = svc.Moderate(context.Background(), approved.ID, true)
	require.NoError(t, err)

	items, total, err := svc.ListApprovedForBook(context.Background(), bookID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, approved.ID, items[0].ID)
}

func TestListForModeration_FilterByState(t *testing.T) {
	_, _, _, svc := setup()
	first, err := svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateReviewRequest{
		Rating: 4, Comment: "good"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), uuid.New(), uuid.New(), &model.CreateReviewRequest{
		Rating: 2, Comment: "weak"})
	require.NoError(t, err)

	_, err = svc.Moderate(context.Background(), first.ID, true)
	require.NoError(t, err)

	pending := false
	items, total, err := svc.ListForModeration(context.Background(), model.ModerationFilter{Approved: &pending})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.False(t, items[0].Approved)

	items, total, err = svc.ListForModeration(context.Background(), model.ModerationFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}
