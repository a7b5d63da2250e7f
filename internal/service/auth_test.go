package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/electro_shop/internal/db/dbtest"
	"github.com/Skotchmaster/electro_shop/internal/events"
	"github.com/Skotchmaster/electro_shop/internal/hash"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/tokens"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

func newAuth(t *testing.T) (*AuthService, *events.Recorder) {
	t.Helper()
	rec := &events.Recorder{}
	return &AuthService{
		Repo: &repo.GormRepo{DB: dbtest.New(t)},
		Tokens: &tokens.Issuer{
			AccessSecret:  []byte("access"),
			RefreshSecret: []byte("refresh"),
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    time.Hour,
		},
		Events: rec,
	}, rec
}

func TestRegisterAndLogin(t *testing.T) {
	s, rec := newAuth(t)
	ctx := context.Background()

	user, err := s.Register(ctx, transport.RegisterRequest{Name: "Asha", Email: " Asha@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, hash.CheckPassword(user.PasswordHash, "secret1"))
	assert.Equal(t, []string{"user_registered"}, rec.Types(events.TopicUsers))

	got, pair, err := s.Login(ctx, transport.LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, s.Tokens.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newAuth(t)
	ctx := context.Background()
	_, err := s.Register(ctx, transport.RegisterRequest{Name: "A", Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Register(ctx, transport.RegisterRequest{Name: "B", Email: "DUP@example.com", Password: "other12"})
	assert.True(t, errors.Is(err, ErrDuplicateEmail))
	n, err := s.Repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newAuth(t)
	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{"no name", transport.RegisterRequest{Email: "a@b.c", Password: "secret1"}},
		{"bad email", transport.RegisterRequest{Name: "a", Email: "nope", Password: "secret1"}},
		{"short password", transport.RegisterRequest{Name: "a", Email: "a@b.c", Password: "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.req)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s, _ := newAuth(t)
	ctx := context.Background()
	_, err := s.Register(ctx, transport.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = s.Login(ctx, transport.LoginRequest{Email: "a@example.com", Password: "wrong!!"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, _, err = s.Login(ctx, transport.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestRefreshRotatesAndLogoutRevokes(t *testing.T) {
	s, _ := newAuth(t)
	ctx := context.Background()
	_, err := s.Register(ctx, transport.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, pair, err := s.Login(ctx, transport.LoginRequest{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	next, err := s.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = s.Refresh(ctx, pair.RefreshToken)
	assert.True(t, errors.Is(err, ErrInvalidRefreshToken), "old token must be single use")

	require.NoError(t, s.Logout(ctx, next.RefreshToken))
	_, err = s.Refresh(ctx, next.RefreshToken)
	assert.True(t, errors.Is(err, ErrInvalidRefreshToken))

	_, err = s.Refresh(ctx, "garbage")
	assert.True(t, errors.Is(err, ErrInvalidRefreshToken))
	assert.NoError(t, s.Logout(ctx, ""))
}

func TestUpdateProfileKeepsRole(t *testing.T) {
	s, _ := newAuth(t)
	ctx := context.Background()
	user, err := s.Register(ctx, transport.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	name, pass := "Anita", "newsecret"
	got, err := s.UpdateProfile(ctx, user.ID, transport.ProfilePatchRequest{Name: &name, Password: &pass})
	require.NoError(t, err)
	assert.Equal(t, "Anita", got.Name)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = s.Authenticate(ctx, "a@example.com", "newsecret")
	assert.NoError(t, err)

	blank := " "
	_, err = s.UpdateProfile(ctx, user.ID, transport.ProfilePatchRequest{Name: &blank})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = s.UpdateProfile(ctx, uuid.New(), transport.ProfilePatchRequest{Name: &name})
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Me(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}
