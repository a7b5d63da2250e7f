package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/electro_shop/internal/events"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

type RepairService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func validateRepair(job *models.RepairJob) error {
	if strings.TrimSpace(job.CustomerName) == "" {
		return fmt.Errorf("%w: customer name required", ErrValidation)
	}
	if strings.TrimSpace(job.Device) == "" {
		return fmt.Errorf("%w: device required", ErrValidation)
	}
	if job.Cost.IsNegative() {
		return fmt.Errorf("%w: cost must be >= 0", ErrValidation)
	}
	if !job.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, job.Status)
	}
	return nil
}

func lockedErr(err error) error {
	if errors.Is(err, repo.ErrRepairLocked) {
		return fmt.Errorf("repair job: %w", ErrLocked)
	}
	return notFound(err, "repair job")
}

func (s *RepairService) Add(ctx context.Context, req transport.CreateRepairRequest) (*models.RepairJob, error) {
	job := &models.RepairJob{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Device:       strings.TrimSpace(req.Device),
		Issue:        strings.TrimSpace(req.Issue),
		Cost:         req.Cost,
		Status:       req.Status,
	}
	if job.Status == "" {
		job.Status = models.RepairPending
	}
	if err := validateRepair(job); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateRepairJob(ctx, job); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicRepairs, job.ID.String(), events.New("repair_created", job.ID.String(), job))
	return job, nil
}

func (s *RepairService) Get(ctx context.Context, id uuid.UUID) (*models.RepairJob, error) {
	job, err := s.Repo.GetRepairJob(ctx, id)
	if err != nil {
		return nil, notFound(err, "repair job")
	}
	return job, nil
}

func (s *RepairService) List(ctx context.Context, f repo.RepairFilter) ([]models.RepairJob, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, f.Status)
	}
	return s.Repo.ListRepairJobs(ctx, f)
}

// Update patches an unbilled job. A status change must follow the repair workflow;
// resending the current status is a no-op.
func (s *RepairService) Update(ctx context.Context, id uuid.UUID, req transport.PatchRepairRequest) (*models.RepairJob, error) {
	job, err := s.Repo.UpdateRepairJob(ctx, id, func(job *models.RepairJob) error {
		if req.CustomerName != nil {
			job.CustomerName = strings.TrimSpace(*req.CustomerName)
		}
		if req.Device != nil {
			job.Device = strings.TrimSpace(*req.Device)
		}
		if req.Issue != nil {
			job.Issue = strings.TrimSpace(*req.Issue)
		}
		if req.Cost != nil {
			job.Cost = *req.Cost
		}
		if req.Status != nil && *req.Status != job.Status {
			if !req.Status.Valid() {
				return fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
			}
			if !job.Status.CanTransitionTo(*req.Status) {
				return &TransitionError{Entity: "repair job", From: string(job.Status), To: string(*req.Status)}
			}
			job.Status = *req.Status
		}
		return validateRepair(job)
	})
	if err != nil {
		return nil, lockedErr(err)
	}
	publish(ctx, s.Events, events.TopicRepairs, id.String(), events.New("repair_updated", id.String(), job))
	return job, nil
}

func (s *RepairService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteRepairJob(ctx, id); err != nil {
		return lockedErr(err)
	}
	publish(ctx, s.Events, events.TopicRepairs, id.String(), events.New("repair_deleted", id.String(), nil))
	return nil
}

// MarkBilled flags the job as billed. Calling it again changes nothing.
func (s *RepairService) MarkBilled(ctx context.Context, id uuid.UUID) (*models.RepairJob, error) {
	if err := s.Repo.MarkRepairBilled(ctx, id); err != nil {
		return nil, notFound(err, "repair job")
	}
	return s.Get(ctx, id)
}
