package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/httpx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)

// TokenVerifier returns the subject of a valid token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// IdentityResolver looks up the identity for a token subject.
type IdentityResolver interface {
	GetIdentityByID(ctx context.Context, id string) (*models.Identity, error)
}

// Gate guards handlers that need an authenticated caller.
type Gate struct {
	tokens     TokenVerifier
	identities IdentityResolver
	logger     logging.Logger
}

func NewGate(tokens TokenVerifier, identities IdentityResolver, logger logging.Logger) *Gate {
	return &Gate{tokens: tokens, identities: identities, logger: logger}
}

// Authenticate resolves the request's bearer token to an Identity.
//
// A missing header yields common.ErrorAuthorizationRequired, a header not of
// the form "Bearer <token>" yields common.ErrorInvalidTokenFormat, and a bad
// token or a subject that no longer exists yields common.ErrorNotAuthorized.
// Directory failures are returned wrapped in common.ErrorInternal.
func (g *Gate) Authenticate(r *http.Request) (*models.Identity, error) {
	header := r.Header.Get(AuthorizationHeader)
	if header == "" {
		return nil, common.ErrorAuthorizationRequired
	}

	token, ok := strings.CutPrefix(header, BearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return nil, common.ErrorInvalidTokenFormat
	}

	subject, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debug(r.Context(), "token rejected", "error", err)
		return nil, common.ErrorNotAuthorized
	}

	identity, err := g.identities.GetIdentityByID(r.Context(), subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			g.logger.Info(r.Context(), "token subject no longer exists", "user_id", subject)
			return nil, common.ErrorNotAuthorized
		}
		return nil, fmt.Errorf("%w: resolve identity: %w", common.ErrorInternal, err)
	}

	return identity, nil
}

// RequireAuth rejects unauthenticated requests and otherwise calls next
// with the caller's Identity in the request context.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := g.Authenticate(r)
		if err != nil {
			if httpx.StatusFor(err) == http.StatusInternalServerError {
				g.logger.Error(r.Context(), "auth gate failure", "error", err)
			}
			httpx.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}
