package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electro_shop/internal/logging"
	authmw "github.com/Skotchmaster/electro_shop/internal/middleware/auth"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/service"
	"github.com/Skotchmaster/electro_shop/internal/tokens"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

type sessionResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register", "invalid body", err)
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login", "invalid body", err)
	}

	user, pair, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login", err)
	}
	authmw.SetAuthCookies(c, pair)

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, sessionResponse{User: user, AccessToken: pair.AccessToken, ExpiresAt: pair.AccessExp})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "refresh")

	raw := ""
	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil {
		raw = ck.Value
	}
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.Bind(&body)
		raw = body.RefreshToken
	}
	if raw == "" {
		l.Warn("refresh_error", "status", http.StatusUnauthorized, "reason", "refresh token missing")
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	pair, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		authmw.ClearAuthCookies(c)
		return fail(l, "refresh", err)
	}
	authmw.SetAuthCookies(c, pair)

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.AccessExp,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logout")

	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil {
		if err := h.Svc.Logout(ctx, ck.Value); err != nil {
			l.Error("logout_error", "status", http.StatusInternalServerError, "error", err)
		}
	}
	authmw.ClearAuthCookies(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.me")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "get_me", err)
	}
	user, err := h.Svc.Me(ctx, userID)
	if err != nil {
		return fail(l, "get_me", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch.me")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "patch_me", err)
	}
	var req transport.ProfilePatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_me", "invalid body", err)
	}

	user, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		return fail(l, "patch_me", err)
	}
	l.Info("patch_me_success", "user_id", userID)
	return c.JSON(http.StatusOK, user)
}
