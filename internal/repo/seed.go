package repo

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electro_shop/internal/models"
)

// truncate removes every row of the given models' tables.
func truncate(tx *gorm.DB, values ...any) error {
	for _, v := range values {
		stmt := &gorm.Statement{DB: tx}
		if err := stmt.Parse(v); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM " + pq.QuoteIdentifier(stmt.Schema.Table)).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteCatalog drops every product along with what hangs off it.
func (r *GormRepo) DeleteCatalog(ctx context.Context) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return truncate(tx, &models.CartItem{}, &models.WishlistItem{}, &models.Review{}, &models.Product{})
	})
}

// DestroyAll empties every table.
func (r *GormRepo) DestroyAll(ctx context.Context) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return truncate(tx,
			&models.OrderItem{}, &models.Order{},
			&models.CartItem{}, &models.WishlistItem{}, &models.Review{},
			&models.RefreshToken{}, &models.RepairJob{},
			&models.Product{}, &models.User{}, &models.Meta{},
		)
	})
}

func (r *GormRepo) CreateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).CreateInBatches(products, 100).Error
}
