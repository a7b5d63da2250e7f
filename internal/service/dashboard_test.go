package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dash := &DashboardService{Repo: f.repo}

	p := f.product(t, "Phone Case", "500", 20)
	f.product(t, "Selfie Stick", "300", 5)
	require.NoError(t, f.repo.CreateUserIfNotExists(ctx, &models.User{Name: "u", Email: "u@x.io", PasswordHash: "h"}))

	uid := uuid.New()
	kept, err := f.orders.PlaceOrder(ctx, checkoutInput(uid, line(p.ID.String(), 2)))
	require.NoError(t, err)
	dropped, err := f.orders.PlaceOrder(ctx, checkoutInput(uid, line(p.ID.String(), 3)))
	require.NoError(t, err)
	_, err = f.orders.Cancel(ctx, dropped.ID, uid)
	require.NoError(t, err)

	for _, s := range []models.RepairStatus{models.RepairPending, models.RepairDiagnosing, models.RepairRepaired, models.RepairDelivered} {
		_, err := f.repairs.Add(ctx, transport.CreateRepairRequest{CustomerName: "c", Device: "d", Status: s})
		require.NoError(t, err)
	}

	st, err := dash.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.TotalProducts)
	assert.EqualValues(t, 2, st.TotalOrders)
	assert.EqualValues(t, 1, st.TotalUsers)
	assert.EqualValues(t, 23, st.TotalStock)
	assert.EqualValues(t, 2, st.ActiveRepairs)
	assert.EqualValues(t, 1, st.RepairedItems)
	assert.EqualValues(t, 1, st.OrdersByStatus[models.OrderPending])
	assert.EqualValues(t, 1, st.OrdersByStatus[models.OrderCancelled])
	assert.EqualValues(t, 0, st.OrdersByStatus[models.OrderRefunded])
	assert.True(t, kept.TotalAmount.Equal(st.Revenue), st.Revenue.String())
}

func TestWishlistAndReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := &models.User{Name: "Dev", Email: "dev@x.io", PasswordHash: "h"}
	require.NoError(t, f.repo.CreateUserIfNotExists(ctx, user))
	p := f.product(t, "Drone", "55000", 1)

	added, err := f.social.ToggleWishlist(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, added)
	list, err := f.social.Wishlist(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	added, err = f.social.ToggleWishlist(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, added)
	_, err = f.social.ToggleWishlist(ctx, user.ID, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))

	_, _, err = f.social.AddReview(ctx, p.ID, user.ID, transport.ReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, prod, err := f.social.AddReview(ctx, p.ID, user.ID, transport.ReviewRequest{Rating: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, prod.NumReviews)
	assert.InDelta(t, 3.5, prod.Rating, 0.001)

	reviews, err := f.social.Reviews(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Dev", reviews[0].UserName)

	_, _, err = f.social.AddReview(ctx, p.ID, user.ID, transport.ReviewRequest{Rating: 6})
	assert.True(t, errors.Is(err, ErrValidation))
	_, _, err = f.social.AddReview(ctx, uuid.New(), user.ID, transport.ReviewRequest{Rating: 4})
	assert.True(t, errors.Is(err, ErrNotFound))

	stored, err := f.repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(55000).Equal(stored.Price))
	assert.Equal(t, 2, stored.NumReviews)
}
