package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/electro_shop/internal/events"
	"github.com/Skotchmaster/electro_shop/internal/hash"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/tokens"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

const minPasswordLen = 6

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Issuer
	Events events.Publisher
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: bad email", ErrValidation)
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: name, Email: email, PasswordHash: hashed, Role: models.RoleUser}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUsers, user.ID.String(), events.New("user_registered", user.ID.String(), map[string]any{
		"email": user.Email,
	}))
	return user, nil
}

// Authenticate checks the credentials. Unknown email and wrong password look the same.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(notFound(err, "user"), ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*models.User, *tokens.Pair, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Repo.AddRefreshToken(ctx, refreshRecord(user, pair)); err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair and revokes the old one.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*tokens.Pair, error) {
	claims, err := tokens.RefreshClaimsFromToken(raw, s.Tokens.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if _, err := s.Repo.FindActiveRefresh(ctx, claims.ID, raw); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, refreshRecord(user, pair)); err != nil {
		if errors.Is(err, repo.ErrRefreshUnavailable) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, raw)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// UpdateProfile merges name and password changes. Email and role are not editable here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req transport.ProfilePatchRequest) (*models.User, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		fields["name"] = name
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
		}
		hashed, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hashed
	}
	if err := s.Repo.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, notFound(err, "user")
	}
	return s.Me(ctx, userID)
}

func refreshRecord(user *models.User, pair *tokens.Pair) *models.RefreshToken {
	return &models.RefreshToken{
		UserID:    user.ID,
		Role:      user.Role,
		Token:     tokens.Sha256Hex(pair.RefreshToken),
		JTI:       pair.RefreshJTI,
		ExpiresAt: pair.RefreshExp.Unix(),
	}
}
