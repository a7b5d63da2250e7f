package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(cfg Config) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(cfg))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/things", ok)
	e.POST("/things", ok)
	e.POST("/auth/login", ok)
	return e
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSafeMethodIssuesToken(t *testing.T) {
	e := newServer(Config{})
	rec := do(e, httptest.NewRequest(http.MethodGet, "/things", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-CSRF-Token"))

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "XSRF-TOKEN" {
			found = true
			assert.False(t, c.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestCookieAuthenticatedPost(t *testing.T) {
	e := newServer(Config{})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusForbidden},
		{"wrong token", "nope", http.StatusForbidden},
		{"matching token", "tok123", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/things", nil)
			req.AddCookie(&http.Cookie{Name: "accessToken", Value: "jwt"})
			req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "tok123"})
			if tt.header != "" {
				req.Header.Set("X-CSRF-Token", tt.header)
			}
			assert.Equal(t, tt.want, do(e, req).Code)
		})
	}
}

func TestBearerAndAnonymousSkipCheck(t *testing.T) {
	e := newServer(Config{})

	bearer := httptest.NewRequest(http.MethodPost, "/things", nil)
	bearer.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	bearer.AddCookie(&http.Cookie{Name: "accessToken", Value: "jwt"})
	assert.Equal(t, http.StatusNoContent, do(e, bearer).Code)

	anon := httptest.NewRequest(http.MethodPost, "/things", nil)
	assert.Equal(t, http.StatusNoContent, do(e, anon).Code)
}

func TestSkipPathsAndOrigin(t *testing.T) {
	e := newServer(Config{SkipPaths: []string{"/auth/login"}, EnforceSameOrigin: true})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "jwt"})
	assert.Equal(t, http.StatusNoContent, do(e, req).Code)

	cross := httptest.NewRequest(http.MethodPost, "/things", nil)
	cross.Host = "shop.local"
	cross.Header.Set("Origin", "http://evil.example")
	cross.Header.Set("X-CSRF-Token", "t")
	cross.AddCookie(&http.Cookie{Name: "accessToken", Value: "jwt"})
	cross.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "t"})
	assert.Equal(t, http.StatusForbidden, do(e, cross).Code)

	same := httptest.NewRequest(http.MethodPost, "/things", nil)
	same.Host = "shop.local"
	same.Header.Set("Origin", "http://shop.local")
	same.Header.Set("X-CSRF-Token", "t")
	same.AddCookie(&http.Cookie{Name: "accessToken", Value: "jwt"})
	same.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "t"})
	assert.Equal(t, http.StatusNoContent, do(e, same).Code)
}
