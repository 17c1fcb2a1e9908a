package client

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// Client is the job board API as seen by the CLI. Calls that need
// authentication take the bearer token explicitly.
type Client interface {
	Ping(ctx context.Context) error
	Signup(ctx context.Context, req models.SignupRequest) (*models.Session, error)
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Me(ctx context.Context, token string) (*models.User, error)
	ListJobs(ctx context.Context) ([]*models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	CreateJob(ctx context.Context, token string, job *models.Job) (*models.Job, error)
	DeleteJob(ctx context.Context, token string, id string) error
	CreateAvatarUpload(ctx context.Context, token string) (*models.AvatarUpload, error)
	UploadAvatar(ctx context.Context, url, contentType string, data []byte) error
}
