package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

// Bill is a counter sale being assembled. It lives for one request.
type Bill struct {
	Lines []models.OrderItem
}

// AddProduct adds qty units of p, merging with an existing line.
// The merged quantity may not exceed the product's stock.
func (b *Bill) AddProduct(p *models.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	ref := p.ID.String()
	for i := range b.Lines {
		if b.Lines[i].ProductRef != ref {
			continue
		}
		if want := b.Lines[i].Quantity + qty; want > p.Stock {
			return &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: want, Available: p.Stock}
		}
		b.Lines[i].Quantity += qty
		return nil
	}
	if qty > p.Stock {
		return &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: qty, Available: p.Stock}
	}
	b.Lines = append(b.Lines, models.OrderItem{
		ProductRef: ref,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   qty,
		Category:   p.Category,
	})
	return nil
}

// AddRepair adds the service line for job. A job can appear once per bill.
func (b *Bill) AddRepair(job *models.RepairJob) error {
	if job.IsBilled {
		return fmt.Errorf("repair %s already billed: %w", job.ID, ErrLocked)
	}
	ref := models.RepairRef(job.ID)
	for _, line := range b.Lines {
		if line.ProductRef == ref {
			return nil
		}
	}
	b.Lines = append(b.Lines, job.ServiceItem())
	return nil
}

func (b *Bill) Total() decimal.Decimal {
	return models.SumItems(b.Lines)
}

// Input turns the bill into a counter order.
func (b *Bill) Input(customer, payment string) PlaceOrderInput {
	if strings.TrimSpace(payment) == "" {
		payment = models.PaymentCash
	}
	items := make([]transport.OrderItemRequest, 0, len(b.Lines))
	for _, line := range b.Lines {
		items = append(items, transport.OrderItemRequest{
			ProductRef: line.ProductRef,
			Quantity:   line.Quantity,
			Name:       line.Name,
			Price:      line.Price,
		})
	}
	return PlaceOrderInput{
		Source:       models.SourcePOS,
		CustomerName: customer,
		Items:        items,
		Payment:      payment,
	}
}

type BillingService struct {
	Repo   *repo.GormRepo
	Orders *OrderService
}

// Checkout builds a bill from the request and places it as a counter order.
func (s *BillingService) Checkout(ctx context.Context, req transport.BillRequest) (*models.Order, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: bill is empty", ErrValidation)
	}
	var bill Bill
	for _, line := range req.Lines {
		switch {
		case line.ProductID != nil && line.RepairID == nil:
			p, err := s.Repo.GetProduct(ctx, *line.ProductID)
			if err != nil {
				return nil, notFound(err, "product")
			}
			if err := bill.AddProduct(p, line.Quantity); err != nil {
				return nil, err
			}
		case line.RepairID != nil && line.ProductID == nil:
			job, err := s.Repo.GetRepairJob(ctx, *line.RepairID)
			if err != nil {
				return nil, notFound(err, "repair job")
			}
			if err := bill.AddRepair(job); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: each line needs exactly one of product_id or repair_id", ErrValidation)
		}
	}
	return s.Orders.PlaceOrder(ctx, bill.Input(req.CustomerName, req.Payment))
}

// History lists counter orders newest first.
func (s *BillingService) History(ctx context.Context, q string, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, repo.OrderFilter{Source: models.SourcePOS, Query: q}, offset, limit)
}

// UnbilledRepairs are the jobs that can still be added to a bill.
func (s *BillingService) UnbilledRepairs(ctx context.Context) ([]models.RepairJob, error) {
	return s.Repo.ListRepairJobs(ctx, repo.RepairFilter{Unbilled: true})
}
