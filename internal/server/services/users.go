// Package services implements the server's use cases on top of the
// repositories: account signup and login, job postings and avatar uploads.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/validation"
)

// SignupInput is the signup request. Bio and ProfilePicture are optional.
type SignupInput struct {
	Name             string `json:"name" validate:"required"`
	Username         string `json:"username" validate:"required"`
	Password         string `json:"password" validate:"required"`
	PhoneNumber      string `json:"phone_number" validate:"required"`
	Gender           string `json:"gender" validate:"required"`
	DateOfBirth      string `json:"date_of_birth" validate:"required"`
	MembershipStatus string `json:"membership_status" validate:"required"`
	Bio              string `json:"bio"`
	Address          string `json:"address" validate:"required"`
	ProfilePicture   string `json:"profile_picture"`
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService is the credential issuer.
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger

	decoyOnce sync.Once
	decoyHash string
}

func NewUserService(rm repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		repomanager: rm,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
	}
}

// Signup validates in, creates the account and returns a token for it.
// Nothing is written unless validation and hashing succeed.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	log := s.logger.With("username", in.Username)
	log.Info(ctx, "signup attempt")

	if err := validation.Struct(in); err != nil {
		log.Warn(ctx, "signup rejected", "reason", err.Error())
		return nil, err
	}

	repo := s.repomanager.Users()

	// Fast path only; the unique index on username is what actually
	// prevents duplicates.
	_, err := repo.GetUserByLogin(ctx, in.Username)
	switch {
	case err == nil:
		log.Warn(ctx, "signup rejected", "reason", "username taken")
		return nil, common.NewError(common.ErrorAlreadyExists, "username already exists")
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("%w: lookup user: %w", common.ErrorInternal, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{
		Name:             in.Name,
		Username:         in.Username,
		PasswordHash:     hash,
		PhoneNumber:      in.PhoneNumber,
		Gender:           in.Gender,
		DateOfBirth:      in.DateOfBirth,
		MembershipStatus: in.MembershipStatus,
		Bio:              in.Bio,
		Address:          in.Address,
		ProfilePicture:   in.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			log.Warn(ctx, "signup rejected", "reason", "username taken")
			return nil, err
		}
		return nil, fmt.Errorf("%w: create user: %w", common.ErrorInternal, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %w", common.ErrorInternal, err)
	}

	log.Info(ctx, "user created", "user_id", user.ID)
	return &AuthResult{Username: user.Username, Token: token}, nil
}

// Login checks the credentials. Unknown usernames and wrong passwords fail
// with the same common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	log := s.logger.With("username", username)
	log.Info(ctx, "login attempt")

	user, err := s.repomanager.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same bcrypt work as a real mismatch
			s.hasher.Verify(password, s.decoy())
			log.Warn(ctx, "login failed")
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("%w: lookup user: %w", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		log.Warn(ctx, "login failed")
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %w", common.ErrorInternal, err)
	}

	log.Info(ctx, "login succeeded", "user_id", user.ID)
	return &AuthResult{Username: user.Username, Token: token}, nil
}

func (s *UserService) decoy() string {
	s.decoyOnce.Do(func() {
		s.decoyHash, _ = s.hasher.Hash("decoy password")
	})
	return s.decoyHash
}

// Me returns the public profile of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotAuthorized
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return user, nil
}
