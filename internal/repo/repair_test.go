package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electro_shop/internal/models"
)

func seedRepair(t *testing.T, r *GormRepo, customer, device string, status models.RepairStatus) *models.RepairJob {
	t.Helper()
	job := &models.RepairJob{CustomerName: customer, Device: device, Issue: "broken", Cost: decimal.NewFromInt(1500), Status: status}
	require.NoError(t, r.CreateRepairJob(context.Background(), job))
	return job
}

func TestMarkRepairBilledIsIdempotent(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	job := seedRepair(t, r, "Bob", "Pixel 7", models.RepairRepaired)

	require.NoError(t, r.MarkRepairBilled(ctx, job.ID))
	first, err := r.GetRepairJob(ctx, job.ID)
	require.NoError(t, err)

	require.NoError(t, r.MarkRepairBilled(ctx, job.ID))
	second, err := r.GetRepairJob(ctx, job.ID)
	require.NoError(t, err)

	assert.True(t, second.IsBilled)
	assert.Equal(t, first.IsBilled, second.IsBilled)
	assert.Equal(t, models.RepairRepaired, second.Status)
	assert.True(t, first.Cost.Equal(second.Cost))

	assert.True(t, errors.Is(r.MarkRepairBilled(ctx, uuid.New()), gorm.ErrRecordNotFound))
}

func TestBilledRepairIsLocked(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	job := seedRepair(t, r, "Bob", "Pixel 7", models.RepairPending)
	require.NoError(t, r.MarkRepairBilled(ctx, job.ID))

	_, err := r.UpdateRepairJob(ctx, job.ID, func(j *models.RepairJob) error {
		j.Cost = decimal.NewFromInt(1)
		return nil
	})
	require.ErrorIs(t, err, ErrRepairLocked)
	require.ErrorIs(t, r.DeleteRepairJob(ctx, job.ID), ErrRepairLocked)

	got, err := r.GetRepairJob(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(1500)))
}

func TestUpdateAndDeleteRepairJob(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	job := seedRepair(t, r, "Bob", "Pixel 7", models.RepairPending)

	got, err := r.UpdateRepairJob(ctx, job.ID, func(j *models.RepairJob) error {
		j.Status = models.RepairDiagnosing
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.RepairDiagnosing, got.Status)

	require.NoError(t, r.DeleteRepairJob(ctx, job.ID))
	_, err = r.GetRepairJob(ctx, job.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.True(t, errors.Is(r.DeleteRepairJob(ctx, job.ID), gorm.ErrRecordNotFound))
}

func TestListRepairJobsFilter(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	seedRepair(t, r, "Bob Stone", "Pixel 7", models.RepairPending)
	seedRepair(t, r, "Alice", "iPhone 13", models.RepairDiagnosing)
	billed := seedRepair(t, r, "Carol", "Galaxy S22", models.RepairRepaired)
	require.NoError(t, r.MarkRepairBilled(ctx, billed.ID))

	jobs, err := r.ListRepairJobs(ctx, RepairFilter{Query: "iphone"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Alice", jobs[0].CustomerName)

	jobs, err = r.ListRepairJobs(ctx, RepairFilter{Query: "stone"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	jobs, err = r.ListRepairJobs(ctx, RepairFilter{Status: models.RepairRepaired})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	jobs, err = r.ListRepairJobs(ctx, RepairFilter{Unbilled: true})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	counts, err := r.CountRepairsByStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[models.RepairPending])
	assert.EqualValues(t, 1, counts[models.RepairDiagnosing])
	assert.EqualValues(t, 1, counts[models.RepairRepaired])
}
