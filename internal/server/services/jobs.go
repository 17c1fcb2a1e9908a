package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
)

var errInvalidBody = common.NewError(common.ErrorValidation, "invalid request body")

type JobService struct {
	repomanager repomanager.RepositoryManager
	schema      *JobSchema
	logger      logging.Logger
}

func NewJobService(rm repomanager.RepositoryManager, logger logging.Logger) (*JobService, error) {
	schema, err := NewJobSchema()
	if err != nil {
		return nil, err
	}
	return &JobService{repomanager: rm, schema: schema, logger: logger}, nil
}

// wrap keeps client-facing kinds and marks everything else internal.
func wrap(op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) ||
		errors.Is(err, common.ErrorInvalidID) ||
		errors.Is(err, common.ErrorValidation) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", common.ErrorInternal, op, err)
}

func (s *JobService) List(ctx context.Context) ([]*models.Job, error) {
	list, err := s.repomanager.Jobs().List(ctx)
	if err != nil {
		return nil, wrap("list jobs", err)
	}
	s.logger.Debug(ctx, "jobs listed", "count", len(list))
	return list, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repomanager.Jobs().Get(ctx, id)
	if err != nil {
		return nil, wrap("get job", err)
	}
	return job, nil
}

// Create stores a new job owned by the caller.
func (s *JobService) Create(ctx context.Context, owner *models.Identity, job *models.Job) (*models.Job, error) {
	job.ID = ""
	job.OwnerID = owner.ID

	if err := s.schema.Validate(job); err != nil {
		return nil, wrap("validate job", err)
	}

	created, err := s.repomanager.Jobs().Create(ctx, job)
	if err != nil {
		return nil, wrap("create job", err)
	}

	s.logger.Info(ctx, "job created", "job_id", created.ID, "owner_id", owner.ID)
	return created, nil
}

// Update merges the JSON object patch into the stored job. Fields absent
// from patch keep their values; id, owner and timestamps cannot be changed.
func (s *JobService) Update(ctx context.Context, id string, patch []byte) (*models.Job, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, errInvalidBody
	}

	updated, err := s.repomanager.Jobs().Update(ctx, id, func(job *models.Job) error {
		id, owner, created := job.ID, job.OwnerID, job.CreatedAt
		if err := json.Unmarshal(patch, job); err != nil {
			return errInvalidBody
		}
		job.ID, job.OwnerID, job.CreatedAt = id, owner, created

		return s.schema.Validate(job)
	})
	if err != nil {
		return nil, wrap("update job", err)
	}

	s.logger.Info(ctx, "job updated", "job_id", id)
	return updated, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Jobs().Delete(ctx, id); err != nil {
		return wrap("delete job", err)
	}
	s.logger.Info(ctx, "job deleted", "job_id", id)
	return nil
}
