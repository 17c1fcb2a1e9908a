// Package common defines sentinel errors shared by the jobboard server and
// client. Callers match them with errors.Is; producers wrap them with %w to
// attach detail without losing the kind.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorInvalidID     = errors.New("invalid id")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorValidation         = errors.New("missing required fields")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Auth gate errors. All of them surface as 401.
	ErrorAuthorizationRequired = errors.New("authorization required")
	ErrorInvalidTokenFormat    = errors.New("invalid token format")
	ErrorNotAuthorized         = errors.New("request is not authorized")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrorConfig marks startup configuration problems. It is fatal.
	ErrorConfig = errors.New("configuration error")

	// ErrorNotConfigured is returned by optional integrations that were not set up.
	ErrorNotConfigured = errors.New("feature not configured")
)

// kindError carries its own message but still matches its kind via errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NewError returns an error with message msg that matches kind.
func NewError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
