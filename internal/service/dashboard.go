package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
)

type Stats struct {
	TotalProducts  int64                        `json:"total_products"`
	TotalOrders    int64                        `json:"total_orders"`
	TotalUsers     int64                        `json:"total_users"`
	TotalStock     int64                        `json:"total_stock"`
	ActiveRepairs  int64                        `json:"active_repairs"`
	RepairedItems  int64                        `json:"repaired_items"`
	OrdersByStatus map[models.OrderStatus]int64 `json:"orders_by_status"`
	Revenue        decimal.Decimal              `json:"revenue"`
}

type DashboardService struct {
	Repo *repo.GormRepo
}

func (s *DashboardService) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	var err error

	if st.TotalProducts, err = s.Repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if st.TotalUsers, err = s.Repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if st.TotalStock, err = s.Repo.TotalStock(ctx); err != nil {
		return nil, err
	}
	if st.Revenue, err = s.Repo.Revenue(ctx); err != nil {
		return nil, err
	}

	byStatus, err := s.Repo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	st.OrdersByStatus = make(map[models.OrderStatus]int64, len(models.OrderStatuses()))
	for _, status := range models.OrderStatuses() {
		st.OrdersByStatus[status] = byStatus[status]
		st.TotalOrders += byStatus[status]
	}

	repairs, err := s.Repo.CountRepairsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for status, n := range repairs {
		if status.Active() {
			st.ActiveRepairs += n
		}
	}
	st.RepairedItems = repairs[models.RepairRepaired]
	return &st, nil
}
