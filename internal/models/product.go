package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `gorm:"primaryKey"                  json:"id"`
	Name        string          `gorm:"not null;index"              json:"name"`
	Category    string          `gorm:"not null;index"              json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;check:stock >= 0"   json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Rating      float64         `gorm:"not null;default:0"          json:"rating"`
	NumReviews  int             `gorm:"not null;default:0"          json:"num_reviews"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
