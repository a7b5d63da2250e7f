package seed

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/electro_shop/internal/db/dbtest"
	"github.com/Skotchmaster/electro_shop/internal/hash"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
)

func newSeeder(t *testing.T) *Seeder {
	t.Helper()
	return &Seeder{Repo: &repo.GormRepo{DB: dbtest.New(t)}, Rand: rand.New(rand.NewPCG(1, 2))}
}

func TestProductsStockRange(t *testing.T) {
	s := newSeeder(t)
	products := s.Products()
	require.Len(t, products, 50)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Stock, 5, p.Name)
		assert.LessOrEqual(t, p.Stock, 44, p.Name)
		assert.True(t, p.Price.GreaterThan(decimal.Zero), p.Name)
		assert.NotEmpty(t, p.Category)
	}
}

func TestEnsureSeedsEmptyStore(t *testing.T) {
	s := newSeeder(t)
	ctx := context.Background()

	rep, err := s.Ensure(ctx)
	require.NoError(t, err)
	assert.True(t, rep.Reseeded)
	assert.Equal(t, 50, rep.Products)
	assert.Equal(t, 2, rep.Users)

	admin, err := s.Repo.GetUserByEmail(ctx, "admin@shop.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.True(t, hash.CheckPassword(admin.PasswordHash, "admin123"))
	user, err := s.Repo.GetUserByEmail(ctx, "user@shop.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	rep, err = s.Ensure(ctx)
	require.NoError(t, err)
	assert.False(t, rep.Reseeded)
	assert.Zero(t, rep.Products)
	assert.Zero(t, rep.Users)
}

func TestEnsureReseedsOldVersionButKeepsOrders(t *testing.T) {
	s := newSeeder(t)
	ctx := context.Background()

	old := &models.Product{Name: "Legacy Widget", Category: "Misc", Price: decimal.NewFromInt(1), Stock: 1}
	require.NoError(t, s.Repo.CreateProduct(ctx, old))
	require.NoError(t, s.Repo.SetMeta(ctx, versionKey, "1"))
	items := []models.OrderItem{{ProductRef: old.ID.String(), Name: old.Name, Price: old.Price, Quantity: 1}}
	order := &models.Order{Source: models.SourcePOS, CustomerName: "x", Items: items, TotalAmount: models.SumItems(items), Status: models.OrderDelivered}
	require.NoError(t, s.Repo.CreateOrder(ctx, order))

	rep, err := s.Ensure(ctx)
	require.NoError(t, err)
	assert.True(t, rep.Reseeded)
	assert.Equal(t, 50, rep.Products)

	_, err = s.Repo.GetProduct(ctx, old.ID)
	assert.Error(t, err)
	_, err = s.Repo.GetOrder(ctx, order.ID)
	assert.NoError(t, err)

	v, err := s.Repo.GetMeta(ctx, versionKey)
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestImportAndDestroy(t *testing.T) {
	s := newSeeder(t)
	ctx := context.Background()
	extra := &models.User{Name: "x", Email: "x@x.io", PasswordHash: "h"}
	require.NoError(t, s.Repo.CreateUserIfNotExists(ctx, extra))

	rep, err := s.Import(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, rep.Products)
	_, err = s.Repo.GetUserByID(ctx, extra.ID)
	assert.Error(t, err)

	require.NoError(t, s.Destroy(ctx))
	n, err := s.Repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = s.Repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NotEqual(t, uuid.Nil, extra.ID)
}
