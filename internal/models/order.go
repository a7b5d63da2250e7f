package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPacked    OrderStatus = "Packed"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
	OrderRefunded  OrderStatus = "Refunded"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPacked, OrderShipped, OrderDelivered, OrderCancelled},
	OrderPacked:    {OrderShipped, OrderDelivered},
	OrderShipped:   {OrderDelivered},
	OrderDelivered: {OrderRefunded},
	OrderCancelled: nil,
	OrderRefunded:  nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Closed orders do not count towards revenue.
func (s OrderStatus) Closed() bool {
	return s == OrderCancelled || s == OrderRefunded
}

func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderPacked, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded}
}

type OrderSource string

const (
	SourceCheckout OrderSource = "checkout"
	SourcePOS      OrderSource = "pos"
)

const (
	RepairRefPrefix = "REPAIR-"
	ServiceCategory = "Service"
	PaymentCash     = "Cash/Offline"
)

func RepairRef(id uuid.UUID) string { return RepairRefPrefix + id.String() }

func IsRepairRef(ref string) bool { return strings.HasPrefix(ref, RepairRefPrefix) }

// ParseRepairRef returns the repair job id encoded in a REPAIR- reference.
func ParseRepairRef(ref string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(ref, RepairRefPrefix))
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID           uuid.UUID       `gorm:"primaryKey"                                  json:"id"`
	UserID       *uuid.UUID      `gorm:"index"                                       json:"user_id,omitempty"`
	CustomerName string          `json:"customer_name"`
	Source       OrderSource     `gorm:"not null;index"                              json:"source"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"                 json:"total_amount"`
	Status       OrderStatus     `gorm:"not null;index"                              json:"status"`
	Payment      string          `json:"payment"`
	Shipping     ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"           json:"shipping_address"`
	CreatedAt    time.Time       `gorm:"index"                                       json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (o *Order) OwnedBy(userID uuid.UUID) bool {
	return o.UserID != nil && *o.UserID == userID
}

type OrderItem struct {
	ID         uuid.UUID       `gorm:"primaryKey"                    json:"id"`
	OrderID    uuid.UUID       `gorm:"index;not null"                json:"order_id"`
	ProductRef string          `gorm:"not null;index"                json:"product_ref"`
	Name       string          `gorm:"not null"                      json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"   json:"price"`
	Quantity   int             `gorm:"not null;check:quantity > 0"   json:"quantity"`
	Category   string          `json:"category"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
