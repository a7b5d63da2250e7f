package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Product{},
		&User{},
		&RefreshToken{},
		&Order{},
		&OrderItem{},
		&RepairJob{},
		&CartItem{},
		&WishlistItem{},
		&Review{},
		&Meta{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

func (r *RepairJob) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
