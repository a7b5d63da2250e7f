package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

type CartService struct {
	Repo   *repo.GormRepo
	Orders *OrderService
}

type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type Cart struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	cart := &Cart{Items: make([]CartLine, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			// product was deleted after it was put in the cart
			continue
		}
		line := CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Stock:     p.Stock,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		}
		cart.Items = append(cart.Items, line)
		cart.Total = cart.Total.Add(line.LineTotal)
	}
	return cart, nil
}

func (s *CartService) Add(ctx context.Context, userID uuid.UUID, req transport.CartItemRequest) (*models.CartItem, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		return nil, notFound(err, "product")
	}
	item := &models.CartItem{UserID: userID, ProductID: req.ProductID, Quantity: req.Quantity}
	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveOne takes one unit off a line. deleted reports whether the line is gone.
func (s *CartService) RemoveOne(ctx context.Context, userID, productID uuid.UUID) (bool, *models.CartItem, error) {
	deleted, item, err := s.Repo.DeleteOneFromCart(ctx, userID, productID)
	if err != nil {
		return false, nil, notFound(err, "cart item")
	}
	return deleted, item, nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.ClearCart(ctx, userID)
}

// Checkout places an order for the whole cart and empties it.
func (s *CartService) Checkout(ctx context.Context, userID uuid.UUID, req transport.CheckoutRequest) (*models.Order, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	lines := make([]transport.OrderItemRequest, 0, len(items))
	for _, it := range items {
		lines = append(lines, transport.OrderItemRequest{ProductRef: it.ProductID.String(), Quantity: it.Quantity})
	}

	name := ""
	if u, err := s.Repo.GetUserByID(ctx, userID); err == nil {
		name = u.Name
	}
	order, err := s.Orders.PlaceOrder(ctx, PlaceOrderInput{
		Source:       models.SourceCheckout,
		UserID:       &userID,
		CustomerName: name,
		Items:        lines,
		Payment:      req.Payment,
		Shipping:     req.ShippingAddress,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		logging.FromContext(ctx).Warn("cart_clear_failed", "user_id", userID, "order_id", order.ID, "error", err)
	}
	return order, nil
}
