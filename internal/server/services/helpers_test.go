package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/users"
)

// stubManager lets a test swap a single repository.
type stubManager struct {
	users users.Repository
	jobs  jobs.Repository
}

func (m *stubManager) RunMigrations(context.Context) error { return nil }
func (m *stubManager) Users() users.Repository             { return m.users }
func (m *stubManager) Jobs() jobs.Repository               { return m.jobs }
func (m *stubManager) Close(context.Context) error         { return nil }

// plainHasher is a fast stand-in for bcrypt.
type plainHasher struct {
	err      error
	verified int
}

func (h *plainHasher) Hash(pw string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "plain:" + pw, nil
}

func (h *plainHasher) Verify(pw, hash string) bool {
	h.verified++
	return hash == "plain:"+pw && strings.HasPrefix(hash, "plain:")
}

type fakeIssuer struct{ err error }

func (f fakeIssuer) Issue(userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

var errDB = errors.New("connection refused")

type failingUsers struct {
	users.Repository
	lookupErr error
	createErr error
}

func (f *failingUsers) GetUserByLogin(ctx context.Context, username string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.Repository.GetUserByLogin(ctx, username)
}

func (f *failingUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.Repository.Create(ctx, u)
}
