package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electro_shop/internal/db/dbtest"
	"github.com/Skotchmaster/electro_shop/internal/middleware/csrf"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/tokens"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

func newServer(t *testing.T, csrfCfg *csrf.Config) *testServer {
	t.Helper()
	gdb := dbtest.New(t)
	e := echo.New()
	Register(e, NewDeps(Options{
		DB: gdb,
		Tokens: &tokens.Issuer{
			AccessSecret:  []byte("access"),
			RefreshSecret: []byte("refresh"),
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    time.Hour,
		},
		CSRF: csrfCfg,
	}))
	return &testServer{e: e, db: gdb}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// signup registers an account and returns its bearer token.
func (s *testServer) signup(t *testing.T, email string, admin bool) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Test " + email, "email": email, "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	if admin {
		var u models.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
		r := &repo.GormRepo{DB: s.db}
		require.NoError(t, r.UpdateUserFields(context.Background(), u.ID, map[string]any{"role": models.RoleAdmin}))
	}

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": email, "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.AccessToken
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newServer(t, nil)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/live", nil, "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health/ready", nil, "").Code)
}

func TestProfileRequiresAuth(t *testing.T) {
	s := newServer(t, nil)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/users/me", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/users/me", nil, "garbage").Code)

	token := s.signup(t, "me@example.com", false)
	rec := s.do(t, http.MethodGet, "/api/v1/users/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "me@example.com", decode[models.User](t, rec).Email)

	rec = s.do(t, http.MethodPatch, "/api/v1/users/me", map[string]string{"name": "Renamed"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", decode[models.User](t, rec).Name)
}

func TestAdminRoutesRejectCustomers(t *testing.T) {
	s := newServer(t, nil)
	user := s.signup(t, "user@example.com", false)
	admin := s.signup(t, "admin@example.com", true)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, user).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, admin).Code)
}

func TestOrderLifecycle(t *testing.T) {
	s := newServer(t, nil)
	admin := s.signup(t, "admin@example.com", true)
	user := s.signup(t, "buyer@example.com", false)

	rec := s.do(t, http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name": "Phone", "category": "Phones", "price": "10.00", "stock": 5,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[models.Product](t, rec)

	order := func(qty int) *httptest.ResponseRecorder {
		return s.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
			"items": []map[string]any{{"product_ref": product.ID.String(), "quantity": qty}},
		}, user)
	}

	rec = order(3)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	placed := decode[models.Order](t, rec)
	assert.True(t, decimal.RequireFromString("30").Equal(placed.TotalAmount))
	assert.Equal(t, models.OrderPending, placed.Status)

	rec = s.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[models.Product](t, rec).Stock)

	rec = order(10)
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decode[map[string]any](t, rec)
	assert.EqualValues(t, 2, conflict["available"])
	assert.EqualValues(t, 10, conflict["requested"])

	rec = s.do(t, http.MethodGet, "/api/v1/orders/mine", nil, user)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[struct {
		Data []models.Order `json:"data"`
	}](t, rec)
	require.Len(t, page.Data, 1)

	other := s.signup(t, "other@example.com", false)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/orders/"+placed.ID.String(), nil, other).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/orders/"+placed.ID.String(), nil, admin).Code)

	rec = s.do(t, http.MethodPost, "/api/v1/orders/"+placed.ID.String()+"/cancel", nil, user)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.OrderCancelled, decode[models.Order](t, rec).Status)

	rec = s.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil, "")
	assert.Equal(t, 5, decode[models.Product](t, rec).Stock)

	rec = s.do(t, http.MethodPost, "/api/v1/orders/"+placed.ID.String()+"/cancel", nil, user)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRepairBillingFlow(t *testing.T) {
	s := newServer(t, nil)
	admin := s.signup(t, "admin@example.com", true)

	rec := s.do(t, http.MethodPost, "/api/v1/admin/repairs", map[string]any{
		"customer_name": "Dana", "device": "Laptop", "issue": "Fan noise", "cost": "45",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	job := decode[models.RepairJob](t, rec)
	assert.Equal(t, models.RepairPending, job.Status)

	rec = s.do(t, http.MethodPost, "/api/v1/admin/billing", map[string]any{
		"customer_name": "Dana",
		"lines":         []map[string]any{{"repair_id": job.ID}},
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bill := decode[models.Order](t, rec)
	assert.Equal(t, models.SourcePOS, bill.Source)
	assert.Equal(t, models.PaymentCash, bill.Payment)

	rec = s.do(t, http.MethodPatch, "/api/v1/admin/repairs/"+job.ID.String(), map[string]any{"issue": "changed"}, admin)
	assert.Equal(t, http.StatusLocked, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/billing/history", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[struct {
		Data []models.Order `json:"data"`
	}](t, rec)
	require.Len(t, history.Data, 1)
	assert.Equal(t, bill.ID, history.Data[0].ID)
}

func TestCSRFOnCookieSessions(t *testing.T) {
	s := newServer(t, &csrf.Config{})
	s.signup(t, "cookie@example.com", false)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "cookie@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var access *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == tokens.AccessCookie {
			access = ck
		}
	}
	require.NotNil(t, access)

	rec = s.do(t, http.MethodDelete, "/api/v1/cart", nil, "", access)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	xsrf := &http.Cookie{Name: "XSRF-TOKEN", Value: "tok"}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req.AddCookie(access)
	req.AddCookie(xsrf)
	req.Header.Set("X-CSRF-Token", "tok")
	out := httptest.NewRecorder()
	s.e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)
}
