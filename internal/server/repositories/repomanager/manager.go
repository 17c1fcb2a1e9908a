// Package repomanager builds the repositories for the configured storage
// backend and owns the backend's lifecycle (schema setup and shutdown).
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations brings the backend schema (tables or indexes) up to date.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Jobs() jobs.Repository
	Close(ctx context.Context) error
}
