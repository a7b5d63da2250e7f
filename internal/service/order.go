package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/electro_shop/internal/events"
	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

type OrderService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
	Events  events.Publisher
}

type PlaceOrderInput struct {
	Source       models.OrderSource
	UserID       *uuid.UUID
	CustomerName string
	Items        []transport.OrderItemRequest
	Payment      string
	Shipping     models.ShippingAddress
}

type physicalLine struct {
	id  uuid.UUID
	qty int
}

func (in *PlaceOrderInput) validate() error {
	switch in.Source {
	case models.SourceCheckout:
		if in.UserID == nil {
			return fmt.Errorf("%w: checkout needs a user", ErrValidation)
		}
	case models.SourcePOS:
		if strings.TrimSpace(in.CustomerName) == "" {
			return fmt.Errorf("%w: customer name required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown order source %q", ErrValidation, in.Source)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrValidation)
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
		if strings.TrimSpace(it.ProductRef) == "" {
			return fmt.Errorf("%w: product_ref required", ErrValidation)
		}
	}
	return nil
}

// PlaceOrder validates, snapshots and persists an order in one transaction.
// Stock is taken with a conditional decrement so concurrent sales cannot oversell.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place", "source", in.Source)
	if err := in.validate(); err != nil {
		return nil, err
	}

	var physical []physicalLine
	var repairs []transport.OrderItemRequest
	seen := map[uuid.UUID]int{}
	for _, it := range in.Items {
		ref := strings.TrimSpace(it.ProductRef)
		if models.IsRepairRef(ref) {
			if in.Source != models.SourcePOS {
				return nil, fmt.Errorf("%w: repair services are billed at the counter only", ErrValidation)
			}
			it.ProductRef = ref
			repairs = append(repairs, it)
			continue
		}
		id, err := uuid.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: bad product_ref %q", ErrValidation, ref)
		}
		if i, ok := seen[id]; ok {
			physical[i].qty += it.Quantity
			continue
		}
		seen[id] = len(physical)
		physical = append(physical, physicalLine{id: id, qty: it.Quantity})
	}

	order := &models.Order{
		ID:           uuid.New(),
		UserID:       in.UserID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		Source:       in.Source,
		Payment:      strings.TrimSpace(in.Payment),
		Shipping:     in.Shipping,
		Status:       models.OrderPending,
	}
	if in.Source == models.SourcePOS {
		order.Status = models.OrderDelivered
		if order.Payment == "" {
			order.Payment = models.PaymentCash
		}
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		items := make([]models.OrderItem, 0, len(physical)+len(repairs))

		for _, line := range physical {
			prod, err := tx.GetProduct(ctx, line.id)
			if err != nil {
				return notFound(err, "product "+line.id.String())
			}
			ok, err := tx.DecrementStock(ctx, line.id, line.qty)
			if err != nil {
				return err
			}
			if !ok {
				available := prod.Stock
				if cur, err := tx.GetProduct(ctx, line.id); err == nil {
					available = cur.Stock
				}
				return &InsufficientStockError{ProductID: prod.ID, Name: prod.Name, Requested: line.qty, Available: available}
			}
			items = append(items, models.OrderItem{
				ProductRef: prod.ID.String(),
				Name:       prod.Name,
				Price:      prod.Price,
				Quantity:   line.qty,
				Category:   prod.Category,
			})
		}

		var billed []uuid.UUID
		// a job is billed once per order, repeated lines are dropped
		jobsSeen := make(map[uuid.UUID]struct{}, len(repairs))
		for _, it := range repairs {
			jobID, err := models.ParseRepairRef(it.ProductRef)
			if err != nil {
				return fmt.Errorf("%w: bad repair reference %q", ErrValidation, it.ProductRef)
			}
			if _, dup := jobsSeen[jobID]; dup {
				continue
			}
			jobsSeen[jobID] = struct{}{}
			job, err := tx.GetRepairJob(ctx, jobID)
			if err != nil {
				if !errors.Is(notFound(err, "repair"), ErrNotFound) {
					return err
				}
				if it.Price.IsNegative() {
					return fmt.Errorf("%w: price must be >= 0", ErrValidation)
				}
				l.Warn("repair_job_missing", "repair_id", jobID, "reason", "billing supplied line as is")
				items = append(items, missingRepairItem(it))
				continue
			}
			if job.IsBilled {
				return fmt.Errorf("repair %s already billed: %w", jobID, ErrLocked)
			}
			items = append(items, job.ServiceItem())
			billed = append(billed, jobID)
		}

		order.Items = items
		order.TotalAmount = models.SumItems(items)
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		for _, id := range billed {
			if err := tx.MarkRepairBilled(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		l.Warn("place_order_failed", "error", err)
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(physical))
	for _, line := range physical {
		ids = append(ids, line.id)
	}
	if s.Catalog != nil {
		s.Catalog.Refresh(ctx, ids...)
	}
	publish(ctx, s.Events, events.TopicOrders, order.ID.String(), events.New("order_placed", order.ID.String(), map[string]any{
		"source": order.Source,
		"total":  order.TotalAmount,
		"items":  len(order.Items),
	}))
	l.Info("order_placed", "order_id", order.ID, "total", order.TotalAmount.String())
	return order, nil
}

func missingRepairItem(it transport.OrderItemRequest) models.OrderItem {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		name = "Repair Service"
	}
	return models.OrderItem{
		ProductRef: it.ProductRef,
		Name:       name,
		Price:      it.Price,
		Quantity:   1,
		Category:   models.ServiceCategory,
	}
}

func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, repo.OrderFilter{UserID: &userID}, offset, limit)
}

func (s *OrderService) ListAll(ctx context.Context, f repo.OrderFilter, offset, limit int) (int64, []models.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, f.Status)
	}
	return s.Repo.ListOrders(ctx, f, offset, limit)
}

// Get returns the order if the caller owns it or is an admin.
func (s *OrderService) Get(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if !isAdmin && !order.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.transition(ctx, id, status, nil)
}

// Cancel moves a customer's own order to Cancelled and puts its stock back.
func (s *OrderService) Cancel(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderCancelled, func(o *models.Order) error {
		if !o.OwnedBy(userID) {
			return ErrForbidden
		}
		return nil
	})
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, to models.OrderStatus, check func(*models.Order) error) (*models.Order, error) {
	var order *models.Order
	var restocked []uuid.UUID

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		o, err := tx.GetOrderForUpdate(ctx, id)
		if err != nil {
			return notFound(err, "order")
		}
		if check != nil {
			if err := check(o); err != nil {
				return err
			}
		}
		if !o.Status.CanTransitionTo(to) {
			return &TransitionError{Entity: "order", From: string(o.Status), To: string(to)}
		}
		if err := tx.SetOrderStatus(ctx, id, to); err != nil {
			return err
		}
		if to == models.OrderCancelled {
			for _, it := range o.Items {
				if models.IsRepairRef(it.ProductRef) {
					continue
				}
				pid, err := uuid.Parse(it.ProductRef)
				if err != nil {
					continue
				}
				if err := tx.IncrementStock(ctx, pid, it.Quantity); err != nil {
					return err
				}
				restocked = append(restocked, pid)
			}
		}
		o.Status = to
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Catalog != nil {
		s.Catalog.Refresh(ctx, restocked...)
	}
	publish(ctx, s.Events, events.TopicOrders, id.String(), events.New("order_status_changed", id.String(), map[string]any{
		"status": to,
	}))
	return order, nil
}
