package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is how long an issued token stays valid.
const DefaultTokenValidity = 72 * time.Hour

// TokenCodec issues and verifies HS256 bearer tokens whose subject is a
// user id. The secret is fixed for the lifetime of the codec.
type TokenCodec struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

// NewTokenCodec returns a codec signing with secretKey. A zero validity
// means DefaultTokenValidity.
func NewTokenCodec(secretKey string, validity time.Duration) (*TokenCodec, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("%w: token signing secret is empty", common.ErrorConfig)
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}

	return &TokenCodec{
		secretKey: []byte(secretKey),
		validity:  validity,
		now:       time.Now,
	}, nil
}

func (c *TokenCodec) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *TokenCodec) ready() error {
	if c == nil || len(c.secretKey) == 0 {
		return fmt.Errorf("%w: token codec has no secret", common.ErrorConfig)
	}
	return nil
}

// Issue signs a token for userID expiring after the codec's validity.
func (c *TokenCodec) Issue(userID string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	now := c.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
	})

	signed, err := token.SignedString(c.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
// Every failure matches common.ErrInvalidToken; an expired token also
// matches common.ErrTokenExpired.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return c.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
