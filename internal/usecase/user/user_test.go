package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/crime-detection/internal/auth"
	domain "github.com/BruksfildServices01/crime-detection/internal/domain/user"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type memRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[uuid.UUID]models.User{}}
}

var _ domain.Repository = (*memRepo)(nil)

func (r *memRepo) CreateUser(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *memRepo) UpdateUser(ctx context.Context, u *models.User) error {
	return r.CreateUser(ctx, u)
}

type memBlacklist struct {
	revoked map[string]time.Duration
}

func (b *memBlacklist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	b.revoked[id] = ttl
	return nil
}

func (b *memBlacklist) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := b.revoked[id]
	return ok, nil
}

func signup(t *testing.T, repo *memRepo) *models.User {
	t.Helper()
	u, err := NewSignup(repo, nil).Execute(context.Background(), SignupInput{
		Email:     "  Officer@Example.COM ",
		Password:  "Secret123",
		Firstname: "Ana",
		Lastname:  "Silva",
	})
	require.NoError(t, err)
	return u
}

func TestSignup(t *testing.T) {
	repo := newMemRepo()
	u := signup(t, repo)

	assert.Equal(t, "officer@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "Secret123", u.PasswordHash)

	_, err := NewSignup(repo, nil).Execute(context.Background(), SignupInput{
		Email:    "officer@example.com",
		Password: "Secret123",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserAlreadyExists))
}

func TestSignupDomainCheck(t *testing.T) {
	reject := func(context.Context, string) bool { return false }
	_, err := NewSignup(newMemRepo(), reject).Execute(context.Background(), SignupInput{
		Email:    "a@nowhere.invalid",
		Password: "Secret123",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidEmailDomain))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	u := signup(t, repo)
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	uc := NewLogin(repo, issuer)

	res, err := uc.Execute(ctx, "OFFICER@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := issuer.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)

	_, err = uc.Execute(ctx, "officer@example.com", "wrong")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCredentials))

	_, err = uc.Execute(ctx, "nobody@example.com", "Secret123")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidCredentials))

	u.IsActive = false
	require.NoError(t, repo.UpdateUser(ctx, u))
	_, err = uc.Execute(ctx, "officer@example.com", "Secret123")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserInactive))
}

func TestUpdateProfile(t *testing.T) {
	repo := newMemRepo()
	u := signup(t, repo)

	phone := " 555-0100 "
	updated, err := NewUpdateProfile(repo).Execute(context.Background(), UpdateProfileInput{
		UserID: u.ID,
		Phone:  &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Ana", updated.Firstname)

	_, err = NewUpdateProfile(repo).Execute(context.Background(), UpdateProfileInput{UserID: uuid.New()})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUserNotFound))
}

func TestLogoutRevokesUntilExpiry(t *testing.T) {
	bl := &memBlacklist{revoked: map[string]time.Duration{}}
	uc := NewLogout(bl)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        "jti-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
	}}
	require.NoError(t, uc.Execute(context.Background(), claims))
	assert.Equal(t, 30*time.Minute, bl.revoked["jti-1"])
}
