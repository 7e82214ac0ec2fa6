package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/pkg/jwt"
)

// fakeRepo is an in-memory user.Repository keeping users and profiles
// in lockstep, like the transactional insert does.
type fakeRepo struct {
	users    map[uuid.UUID]*user.User
	profiles map[uuid.UUID]*user.Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[uuid.UUID]*user.User{},
		profiles: map[uuid.UUID]*user.Profile{},
	}
}

func (f *fakeRepo) Create(_ context.Context, u *user.User, p *user.Profile) (*user.User, *user.Profile, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, nil, user.ErrEmailTaken
		}
	}
	created := *u
	created.ID = uuid.New()
	created.IsActive = true
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.users[created.ID] = &created

	profile := *p
	profile.UserID = created.ID
	f.profiles[created.ID] = &profile

	outU, outP := created, profile
	return &outU, &outP, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeRepo) GetProfile(_ context.Context, userID uuid.UUID) (*user.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, p *user.Profile) (*user.Profile, error) {
	stored, ok := f.profiles[p.UserID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	stored.DisplayName = p.DisplayName
	stored.UpdatedAt = time.Now()
	copied := *stored
	return &copied, nil
}

func (f *fakeRepo) UpdateAvatarURL(_ context.Context, userID uuid.UUID, avatarURL string) error {
	stored, ok := f.profiles[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	stored.AvatarURL = &avatarURL
	return nil
}

type fakeStorage struct{}

func (fakeStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "http://storage.local/" + key, nil
}

func newService(repo *fakeRepo) user.Service {
	manager := jwt.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewUserService(repo, manager, fakeStorage{})
}

func TestRegister_HashesPasswordAndCreatesProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	u, p, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email, "email is normalized")
	assert.Equal(t, user.RoleUser, u.Role)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")))

	require.NotNil(t, p)
	assert.Equal(t, "alice", p.DisplayName, "display name defaults to the email local part")
}

func TestRegister_ExplicitDisplayName(t *testing.T) {
	svc := newService(newFakeRepo())

	_, p, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email:       "alice@example.com",
		Password:    "correct horse",
		DisplayName: "Alice L.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", p.DisplayName)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(newFakeRepo())

	_, _, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "not-an-email", Password: "longenough"})
	assert.Error(t, err)

	_, _, err = svc.Register(context.Background(), &user.RegisterRequest{
		Email: "alice@example.com", Password: "short"})
	assert.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newService(newFakeRepo())

	_, _, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), &user.RegisterRequest{
		Email: "ALICE@example.com", Password: "another pass"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newService(newFakeRepo())
	registered, _, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	tokens, u, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, _, err = svc.Login(context.Background(), &user.LoginRequest{
		Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), &user.LoginRequest{
		Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	registered, _, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	tokens, _, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), &user.RefreshRequest{
		RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)

	_, err = svc.Refresh(context.Background(), &user.RefreshRequest{
		RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	// an access token must not pass as a refresh token
	_, err = svc.Refresh(context.Background(), &user.RefreshRequest{
		RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	repo.users[registered.ID].IsActive = false
	_, err = svc.Refresh(context.Background(), &user.RefreshRequest{
		RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, user.ErrAccountDisabled)
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	registered, _, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	repo.users[registered.ID].IsActive = false

	_, _, err = svc.Login(context.Background(), &user.LoginRequest{
		Email: "alice@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, user.ErrAccountDisabled)
}

func TestUpdateProfile(t *testing.T) {
	svc := newService(newFakeRepo())
	registered, _, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	p, err := svc.UpdateProfile(context.Background(), registered.ID, &user.UpdateProfileRequest{
		DisplayName: "Alice the Reader"})
	require.NoError(t, err)
	assert.Equal(t, "Alice the Reader", p.DisplayName)

	_, err = svc.UpdateProfile(context.Background(), registered.ID, &user.UpdateProfileRequest{
		DisplayName: "   "})
	assert.Error(t, err)
}

func TestUploadAvatar(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	registered, _, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.UploadAvatar(context.Background(), registered.ID, []byte{0x1}, "text/plain")
	assert.ErrorIs(t, err, user.ErrInvalidAvatar)

	url, err := svc.UploadAvatar(context.Background(), registered.ID, []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)
	require.NotNil(t, repo.profiles[registered.ID].AvatarURL)
	assert.Equal(t, url, *repo.profiles[registered.ID].AvatarURL)
}
