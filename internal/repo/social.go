package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electro_shop/internal/models"
)

// ToggleWishlist adds the product when absent and removes it otherwise.
func (r *GormRepo) ToggleWishlist(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	added := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		added = true
		return tx.Create(&models.WishlistItem{UserID: userID, ProductID: productID}).Error
	})
	return added, err
}

func (r *GormRepo) WishlistProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Joins("JOIN wishlist_items ON wishlist_items.product_id = products.id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.created_at DESC").
		Find(&items).Error
	return items, err
}

// AddReview stores the review and refreshes the product's rating aggregates.
func (r *GormRepo) AddReview(ctx context.Context, review *models.Review) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", review.ProductID).First(&prod).Error; err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int
		}
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("product_id = ?", review.ProductID).
			Scan(&agg).Error; err != nil {
			return err
		}

		prod.Rating = agg.Avg
		prod.NumReviews = agg.Count
		return tx.Model(&prod).UpdateColumns(map[string]any{
			"rating":      agg.Avg,
			"num_reviews": agg.Count,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) ListReviews(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *GormRepo) GetMeta(ctx context.Context, key string) (string, error) {
	var m models.Meta
	if err := r.DB.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		return "", err
	}
	return m.Value, nil
}

func (r *GormRepo) SetMeta(ctx context.Context, key, value string) error {
	return r.DB.WithContext(ctx).Save(&models.Meta{Key: key, Value: value}).Error
}
