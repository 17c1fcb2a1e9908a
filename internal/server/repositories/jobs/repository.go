// Package jobs stores job postings.
package jobs

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

// Repository persists jobs. A malformed id yields common.ErrorInvalidID and
// an unknown one common.ErrorNotFound.
type Repository interface {
	// List returns all jobs, newest first.
	List(ctx context.Context) ([]*models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	// Update loads the job, lets fn modify it and stores the result. If fn
	// returns an error nothing is written.
	Update(ctx context.Context, id string, fn func(job *models.Job) error) (*models.Job, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidJobID = common.NewError(common.ErrorInvalidID, "invalid job id")
	ErrJobNotFound  = common.NewError(common.ErrorNotFound, "job not found")
)
