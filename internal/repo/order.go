package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/electro_shop/internal/models"
)

type OrderFilter struct {
	UserID *uuid.UUID
	Status models.OrderStatus
	Source models.OrderSource
	// Query matches an order id prefix or a customer name substring.
	Query string
}

func (f OrderFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where(`(LOWER(CAST(id AS TEXT)) LIKE ? ESCAPE '\' OR LOWER(customer_name) LIKE ? ESCAPE '\')`,
			likeEscaper.Replace(strings.ToLower(s))+"%", containsPattern(s))
	}
	return q
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderForUpdate locks the order row until the surrounding transaction ends.
func (r *GormRepo) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Order{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	orders := make([]models.Order, 0, limit)
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Order{})).
		Preload("Items").
		Order("created_at DESC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) SetOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type StatusCount struct {
	Status models.OrderStatus
	Count  int64
}

func (r *GormRepo) CountOrdersByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []StatusCount
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// Revenue sums totals of orders that were neither cancelled nor refunded.
func (r *GormRepo) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{models.OrderCancelled, models.OrderRefunded}).
		Select("SUM(total_amount)").
		Row().Scan(&raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}
