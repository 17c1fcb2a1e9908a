package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakeClient struct {
	signupReq models.SignupRequest
	loginUser string
	loginPass string
	gotToken  string
	session   *models.Session
	user      *models.User
	jobs      []*models.Job
	created   *models.Job
	deletedID string
	avatar    *models.AvatarUpload
	upType    string
	upData    []byte
	upErr     error
	err       error
}

func (f *fakeClient) Ping(context.Context) error { return f.err }

func (f *fakeClient) Signup(_ context.Context, req models.SignupRequest) (*models.Session, error) {
	f.signupReq = req
	return f.session, f.err
}

func (f *fakeClient) Login(_ context.Context, username, password string) (*models.Session, error) {
	f.loginUser, f.loginPass = username, password
	return f.session, f.err
}

func (f *fakeClient) Me(_ context.Context, token string) (*models.User, error) {
	f.gotToken = token
	return f.user, f.err
}

func (f *fakeClient) ListJobs(context.Context) ([]*models.Job, error) { return f.jobs, f.err }

func (f *fakeClient) GetJob(_ context.Context, id string) (*models.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "job not found"}
}

func (f *fakeClient) CreateJob(_ context.Context, token string, job *models.Job) (*models.Job, error) {
	f.gotToken = token
	f.created = job
	return job, f.err
}

func (f *fakeClient) DeleteJob(_ context.Context, token string, id string) error {
	f.gotToken, f.deletedID = token, id
	return f.err
}

func (f *fakeClient) CreateAvatarUpload(_ context.Context, token string) (*models.AvatarUpload, error) {
	f.gotToken = token
	return f.avatar, f.err
}

func (f *fakeClient) UploadAvatar(_ context.Context, url, contentType string, data []byte) error {
	f.upType, f.upData = contentType, data
	return f.upErr
}
