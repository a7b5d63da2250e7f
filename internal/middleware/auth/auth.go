package authmw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/tokens"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

type Refresher interface {
	Refresh(ctx context.Context, raw string) (*tokens.Pair, error)
}

// AutoRefresh authenticates requests from the access cookie or a bearer token.
// An expired access cookie is renewed from the refresh cookie when Refresher is set.
type AutoRefresh struct {
	JWTSecret []byte
	Refresher Refresher
}

func New(secret []byte, refresher Refresher) *AutoRefresh {
	return &AutoRefresh{JWTSecret: secret, Refresher: refresher}
}

type validatorFunc func(claims *tokens.AccessClaims) error

func (m *AutoRefresh) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, nil)
}

func (m *AutoRefresh) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *AutoRefresh) require(next echo.HandlerFunc, validator validatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if raw, ok := BearerToken(c.Request()); ok {
			claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			return m.pass(c, next, claims, validator)
		}

		accessCookie, err := c.Cookie(tokens.AccessCookie)
		if err != nil || accessCookie.Value == "" {
			return m.refresh(c, next, validator)
		}

		claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
		if err == nil {
			return m.pass(c, next, claims, validator)
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			ClearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		return m.refresh(c, next, validator)
	}
}

func (m *AutoRefresh) refresh(c echo.Context, next echo.HandlerFunc, validator validatorFunc) error {
	refreshCookie, err := c.Cookie(tokens.RefreshCookie)
	if m.Refresher == nil || err != nil || refreshCookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}

	pair, err := m.Refresher.Refresh(c.Request().Context(), refreshCookie.Value)
	if err != nil {
		ClearAuthCookies(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
	}
	SetAuthCookies(c, pair)

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, m.JWTSecret)
	if err != nil {
		ClearAuthCookies(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
	}
	return m.pass(c, next, claims, validator)
}

func (m *AutoRefresh) pass(c echo.Context, next echo.HandlerFunc, claims *tokens.AccessClaims, validator validatorFunc) error {
	if validator != nil {
		if err := validator(claims); err != nil {
			return err
		}
	}
	c.Set(ctxUserID, claims.Subject)
	c.Set(ctxRole, claims.Role)
	return next(c)
}

// BearerToken returns the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(echo.HeaderAuthorization)
	scheme, raw, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return strings.TrimSpace(raw), true
}

func SetAuthCookies(c echo.Context, pair *tokens.Pair) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, pair.RefreshToken, "/", pair.RefreshExp))
}

func ClearAuthCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
}

var ErrUnauthorized = errors.New("unauthorized")

func UserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(ctxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

func IsAdmin(c echo.Context) bool {
	role, _ := c.Get(ctxRole).(string)
	return role == models.RoleAdmin
}
