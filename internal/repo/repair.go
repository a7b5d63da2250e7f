package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/electro_shop/internal/models"
)

var ErrRepairLocked = errors.New("repair job is billed")

type RepairFilter struct {
	Query    string
	Status   models.RepairStatus
	Unbilled bool
}

func (f RepairFilter) apply(q *gorm.DB) *gorm.DB {
	if strings.TrimSpace(f.Query) != "" {
		p := containsPattern(f.Query)
		q = q.Where(`(LOWER(customer_name) LIKE ? ESCAPE '\' OR LOWER(device) LIKE ? ESCAPE '\')`, p, p)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Unbilled {
		q = q.Where("is_billed = ?", false)
	}
	return q
}

func (r *GormRepo) CreateRepairJob(ctx context.Context, job *models.RepairJob) error {
	return r.DB.WithContext(ctx).Create(job).Error
}

func (r *GormRepo) GetRepairJob(ctx context.Context, id uuid.UUID) (*models.RepairJob, error) {
	var job models.RepairJob
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *GormRepo) ListRepairJobs(ctx context.Context, f RepairFilter) ([]models.RepairJob, error) {
	var jobs []models.RepairJob
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.RepairJob{})).
		Order("created_at DESC").Order("id ASC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateRepairJob applies a mutation to an unbilled job under lock.
func (r *GormRepo) UpdateRepairJob(ctx context.Context, id uuid.UUID, apply func(job *models.RepairJob) error) (*models.RepairJob, error) {
	var job models.RepairJob
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&job).Error; err != nil {
			return err
		}
		if job.IsBilled {
			return ErrRepairLocked
		}
		if err := apply(&job); err != nil {
			return err
		}
		return tx.Save(&job).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *GormRepo) DeleteRepairJob(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.RepairJob
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&job).Error; err != nil {
			return err
		}
		if job.IsBilled {
			return ErrRepairLocked
		}
		return tx.Delete(&job).Error
	})
}

// MarkRepairBilled sets is_billed and leaves every other column alone.
func (r *GormRepo) MarkRepairBilled(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&models.RepairJob{}).
		Where("id = ?", id).
		UpdateColumn("is_billed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// sqlite and postgres count matched rows, so zero means no such job
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CountRepairsByStatus(ctx context.Context) (map[models.RepairStatus]int64, error) {
	var rows []struct {
		Status models.RepairStatus
		Count  int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.RepairJob{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.RepairStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
