// Package users is the user directory: account persistence keyed by a
// unique username, with Mongo, Postgres and in-memory backends.
package users

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

// Repository is the contract the credential issuer and the auth gate rely
// on. Lookups of unknown users return common.ErrorNotFound; a duplicate
// username on Create returns common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetIdentityByID(ctx context.Context, id string) (*models.Identity, error)
	SetProfilePicture(ctx context.Context, id string, key string) error
}
