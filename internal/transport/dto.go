package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/electro_shop/internal/models"
)

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfilePatchRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type OrderItemRequest struct {
	ProductRef string `json:"product_ref"`
	Quantity   int    `json:"quantity"`
	// Name and Price are only read for repair lines whose job no longer exists.
	Name  string          `json:"name,omitempty"`
	Price decimal.Decimal `json:"price,omitempty"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	Payment         string                 `json:"payment"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
}

type CheckoutRequest struct {
	Payment         string                 `json:"payment"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type WishlistRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CreateRepairRequest struct {
	CustomerName string              `json:"customer_name"`
	Device       string              `json:"device"`
	Issue        string              `json:"issue"`
	Cost         decimal.Decimal     `json:"cost"`
	Status       models.RepairStatus `json:"status"`
}

type PatchRepairRequest struct {
	CustomerName *string              `json:"customer_name"`
	Device       *string              `json:"device"`
	Issue        *string              `json:"issue"`
	Cost         *decimal.Decimal     `json:"cost"`
	Status       *models.RepairStatus `json:"status"`
}

type BillLineRequest struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	RepairID  *uuid.UUID `json:"repair_id,omitempty"`
	Quantity  int        `json:"quantity"`
}

type BillRequest struct {
	CustomerName string            `json:"customer_name"`
	Payment      string            `json:"payment"`
	Lines        []BillLineRequest `json:"lines"`
}
