package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

// AuthService manages the CLI's account session.
//
// Passwords are taken as byte slices so the caller can wipe them after use.
type AuthService interface {
	Signup(ctx context.Context, profile models.SignupRequest, password []byte) (*models.Session, error)
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	UploadAvatar(ctx context.Context, path string) (string, error)
}

type authService struct {
	client   client.Client
	sessions *SessionStore
	logger   logging.Logger
}

func NewAuthService(c client.Client, sessions *SessionStore, logger logging.Logger) AuthService {
	return &authService{client: c, sessions: sessions, logger: logger}
}

func (a *authService) Signup(ctx context.Context, profile models.SignupRequest, password []byte) (*models.Session, error) {
	profile.Password = string(password)

	s, err := a.client.Signup(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.logger.Info(ctx, "signed up", "username", s.Username)
	return s, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	s, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.logger.Info(ctx, "logged in", "username", s.Username)
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.Session, error) {
	return a.sessions.Load(ctx)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	u, err := a.client.Me(ctx, s.Token)
	if err != nil {
		return nil, dropOnUnauthorized(ctx, a.sessions, a.logger, err)
	}
	return u, nil
}

// dropOnUnauthorized clears the saved session when the server rejected its
// token, then returns err unchanged.
func dropOnUnauthorized(ctx context.Context, sessions *SessionStore, logger logging.Logger, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		if cerr := sessions.Clear(ctx); cerr != nil {
			logger.Warn(ctx, "could not clear session", "error", cerr)
		} else {
			logger.Info(ctx, "session expired, logged out")
		}
	}
	return err
}

// UploadAvatar uploads the image at path as the profile picture and returns
// its object key.
func (a *authService) UploadAvatar(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read picture: %w", err)
	}

	s, err := a.sessions.Load(ctx)
	if err != nil {
		return "", err
	}

	up, err := a.client.CreateAvatarUpload(ctx, s.Token)
	if err != nil {
		return "", dropOnUnauthorized(ctx, a.sessions, a.logger, err)
	}

	if err := a.client.UploadAvatar(ctx, up.URL, http.DetectContentType(data), data); err != nil {
		return "", err
	}

	a.logger.Info(ctx, "avatar uploaded", "key", up.Key)
	return up.Key, nil
}
