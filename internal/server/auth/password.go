// Package auth holds the server's credential primitives: password hashing,
// bearer token issuance and verification, and the HTTP gate that resolves
// a bearer token to an Identity.
package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored hashes.
const DefaultCost = bcrypt.DefaultCost

// PasswordHasher produces and checks bcrypt hashes. It is stateless and
// safe for concurrent use.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: DefaultCost}
}

// Hash returns a salted bcrypt hash of password. Passwords over bcrypt's
// 72-byte limit are rejected instead of being silently truncated.
func (h *PasswordHasher) Hash(password string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.NewError(common.ErrorValidation, "password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is a
// mismatch.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
