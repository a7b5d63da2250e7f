package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RepairStatus string

const (
	RepairPending    RepairStatus = "Pending"
	RepairDiagnosing RepairStatus = "Diagnosing"
	RepairRepaired   RepairStatus = "Repaired"
	RepairDelivered  RepairStatus = "Delivered"
	RepairCancelled  RepairStatus = "Cancelled"
)

var repairTransitions = map[RepairStatus][]RepairStatus{
	RepairPending:    {RepairDiagnosing, RepairRepaired, RepairCancelled},
	RepairDiagnosing: {RepairPending, RepairRepaired, RepairCancelled},
	RepairRepaired:   {RepairDiagnosing, RepairDelivered},
	RepairDelivered:  nil,
	RepairCancelled:  {RepairPending},
}

func (s RepairStatus) Valid() bool {
	_, ok := repairTransitions[s]
	return ok
}

func (s RepairStatus) CanTransitionTo(next RepairStatus) bool {
	for _, allowed := range repairTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active jobs are still on the bench.
func (s RepairStatus) Active() bool {
	return s == RepairPending || s == RepairDiagnosing
}

type RepairJob struct {
	ID           uuid.UUID       `gorm:"primaryKey"                  json:"id"`
	CustomerName string          `gorm:"not null;index"              json:"customer_name"`
	Device       string          `gorm:"not null"                    json:"device"`
	Issue        string          `json:"issue"`
	Cost         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`
	Status       RepairStatus    `gorm:"not null;index"              json:"status"`
	IsBilled     bool            `gorm:"not null;default:false"      json:"is_billed"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ServiceName is the line item name used when the job is billed.
func (r *RepairJob) ServiceName() string {
	return fmt.Sprintf("Repair Service: %s (%s)", r.Device, r.Issue)
}

func (r *RepairJob) ServiceItem() OrderItem {
	return OrderItem{
		ProductRef: RepairRef(r.ID),
		Name:       r.ServiceName(),
		Price:      r.Cost,
		Quantity:   1,
		Category:   ServiceCategory,
	}
}
