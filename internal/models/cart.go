package models

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                              json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null"   json:"user_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null"   json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity > 0"   json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

type WishlistItem struct {
	UserID    uuid.UUID `gorm:"primaryKey"  json:"user_id"`
	ProductID uuid.UUID `gorm:"primaryKey"  json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID        uuid.UUID `gorm:"primaryKey"                            json:"id"`
	ProductID uuid.UUID `gorm:"index;not null"                        json:"product_id"`
	UserID    uuid.UUID `gorm:"index;not null"                        json:"user_id"`
	UserName  string    `gorm:"not null"                              json:"user_name"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Meta is a small key/value table for markers such as the catalog data version.
type Meta struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null"   json:"value"`
}

func (Meta) TableName() string {
	return "meta"
}
