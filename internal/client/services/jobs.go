package services

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

// JobService browses and posts jobs. Writes use the saved session.
type JobService interface {
	List(ctx context.Context) ([]*models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	Delete(ctx context.Context, id string) error
}

type jobService struct {
	client   client.Client
	sessions *SessionStore
	logger   logging.Logger
}

func NewJobService(c client.Client, sessions *SessionStore, logger logging.Logger) JobService {
	return &jobService{client: c, sessions: sessions, logger: logger}
}

func (s *jobService) List(ctx context.Context) ([]*models.Job, error) {
	return s.client.ListJobs(ctx)
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	return s.client.GetJob(ctx, id)
}

func (s *jobService) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.client.CreateJob(ctx, session.Token, job)
	if err != nil {
		return nil, dropOnUnauthorized(ctx, s.sessions, s.logger, err)
	}
	return created, nil
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return err
	}

	if err := s.client.DeleteJob(ctx, session.Token, id); err != nil {
		return dropOnUnauthorized(ctx, s.sessions, s.logger, err)
	}
	return nil
}
