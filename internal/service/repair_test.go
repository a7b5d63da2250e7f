package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/electro_shop/internal/events"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

func statusPtr(s models.RepairStatus) *models.RepairStatus { return &s }

func TestAddRepairDefaults(t *testing.T) {
	f := newFixture(t)
	job, err := f.repairs.Add(context.Background(), transport.CreateRepairRequest{
		CustomerName: " Priya ",
		Device:       "OnePlus 11",
		Issue:        "charging port",
		Cost:         decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RepairPending, job.Status)
	assert.Equal(t, "Priya", job.CustomerName)
	assert.False(t, job.IsBilled)
	assert.Equal(t, []string{"repair_created"}, f.rec.Types(events.TopicRepairs))
}

func TestAddRepairValidation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		req  transport.CreateRepairRequest
	}{
		{"no customer", transport.CreateRepairRequest{Device: "x"}},
		{"no device", transport.CreateRepairRequest{CustomerName: "x"}},
		{"negative cost", transport.CreateRepairRequest{CustomerName: "x", Device: "y", Cost: decimal.NewFromInt(-1)}},
		{"unknown status", transport.CreateRepairRequest{CustomerName: "x", Device: "y", Status: "Lost"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.repairs.Add(context.Background(), tt.req)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
}

func TestUpdateRepairWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job, err := f.repairs.Add(ctx, transport.CreateRepairRequest{CustomerName: "Arjun", Device: "ThinkPad", Issue: "hinge", Cost: decimal.NewFromInt(900)})
	require.NoError(t, err)

	job, err = f.repairs.Update(ctx, job.ID, transport.PatchRepairRequest{Status: statusPtr(models.RepairDiagnosing)})
	require.NoError(t, err)
	assert.Equal(t, models.RepairDiagnosing, job.Status)

	cost := decimal.NewFromInt(1100)
	job, err = f.repairs.Update(ctx, job.ID, transport.PatchRepairRequest{Cost: &cost, Status: statusPtr(models.RepairDiagnosing)})
	require.NoError(t, err)
	assert.True(t, cost.Equal(job.Cost))

	_, err = f.repairs.Update(ctx, job.ID, transport.PatchRepairRequest{Status: statusPtr(models.RepairDelivered)})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	job, err = f.repairs.Update(ctx, job.ID, transport.PatchRepairRequest{Status: statusPtr(models.RepairRepaired)})
	require.NoError(t, err)
	job, err = f.repairs.Update(ctx, job.ID, transport.PatchRepairRequest{Status: statusPtr(models.RepairDelivered)})
	require.NoError(t, err)

	_, err = f.repairs.Update(ctx, job.ID, transport.PatchRepairRequest{Status: statusPtr(models.RepairPending)})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	stored, err := f.repairs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RepairDelivered, stored.Status)

	_, err = f.repairs.Update(ctx, uuid.New(), transport.PatchRepairRequest{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCancelledRepairCanBeReopened(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job, err := f.repairs.Add(ctx, transport.CreateRepairRequest{CustomerName: "Kiran", Device: "iPad", Status: models.RepairCancelled})
	require.NoError(t, err)

	job, err = f.repairs.Update(ctx, job.ID, transport.PatchRepairRequest{Status: statusPtr(models.RepairPending)})
	require.NoError(t, err)
	assert.Equal(t, models.RepairPending, job.Status)
}

func TestMarkBilledIsIdempotentAndLocksJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.repair(t, "Galaxy Tab", "display", "4000")

	first, err := f.repairs.MarkBilled(ctx, job.ID)
	require.NoError(t, err)
	second, err := f.repairs.MarkBilled(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, first.IsBilled)
	assert.True(t, second.IsBilled)
	assert.Equal(t, job.Status, second.Status)
	assert.True(t, job.Cost.Equal(second.Cost))

	cost := decimal.NewFromInt(10)
	_, err = f.repairs.Update(ctx, job.ID, transport.PatchRepairRequest{Cost: &cost})
	assert.True(t, errors.Is(err, ErrLocked))
	assert.True(t, errors.Is(f.repairs.Delete(ctx, job.ID), ErrLocked))

	stored, err := f.repairs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4000).Equal(stored.Cost))

	_, err = f.repairs.MarkBilled(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteAndListRepairs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.repair(t, "Nokia 3310", "keypad", "200")
	f.repair(t, "Redmi Note", "camera", "700")

	require.NoError(t, f.repairs.Delete(ctx, a.ID))
	assert.True(t, errors.Is(f.repairs.Delete(ctx, a.ID), ErrNotFound))

	jobs, err := f.repairs.List(ctx, repo.RepairFilter{Query: "redmi"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Redmi Note", jobs[0].Device)

	_, err = f.repairs.List(ctx, repo.RepairFilter{Status: "Lost"})
	assert.True(t, errors.Is(err, ErrValidation))
}
