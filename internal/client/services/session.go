// Package services contains the CLI's use cases: account signup and login
// with a persisted session, and job browsing and posting.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
)

var ErrNotLoggedIn = errors.New("not logged in")

const (
	keyUsername = "username"
	keyToken    = "token"
)

// SessionStore keeps the current session in the local metadata table so it
// survives restarts.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Load returns the saved session, or ErrNotLoggedIn.
func (s *SessionStore) Load(ctx context.Context) (*models.Session, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, ErrNotLoggedIn
	}

	username, err := repo.Get(ctx, keyUsername)
	if err != nil {
		return nil, err
	}

	return &models.Session{Username: string(username), Token: string(token)}, nil
}

// Save stores username and token in a single transaction.
func (s *SessionStore) Save(ctx context.Context, session *models.Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyUsername, []byte(session.Username)); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, []byte(session.Token))
	})
}

// Clear forgets the session.
func (s *SessionStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUsername)
	})
}
