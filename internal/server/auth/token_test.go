package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func fixedCodec(t *testing.T, now time.Time) *TokenCodec {
	t.Helper()
	c, err := NewTokenCodec(testSecret, 0)
	require.NoError(t, err)
	c.now = func() time.Time { return now }
	return c
}

func TestNewTokenCodec_EmptySecret(t *testing.T) {
	c, err := NewTokenCodec("", time.Hour)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, common.ErrorConfig))
}

func TestTokenCodec_ZeroValueRefuses(t *testing.T) {
	var c TokenCodec

	_, err := c.Issue("u1")
	assert.True(t, errors.Is(err, common.ErrorConfig))

	_, err = c.Verify("anything")
	assert.True(t, errors.Is(err, common.ErrorConfig))
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := fixedCodec(t, now)

	tok, err := c.Issue("user-42")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(tok, "."))

	sub, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestTokenCodec_Claims(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := fixedCodec(t, now)

	tok, err := c.Issue("user-42")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	assert.Equal(t, "user-42", claims.Subject)
	assert.True(t, claims.IssuedAt.Time.Equal(now))
	assert.True(t, claims.ExpiresAt.Time.Equal(now.Add(72*time.Hour)))
}

func TestTokenCodec_Expiry(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := fixedCodec(t, issuedAt)

	tok, err := c.Issue("user-42")
	require.NoError(t, err)

	c.now = func() time.Time { return issuedAt.Add(72*time.Hour - time.Second) }
	_, err = c.Verify(tok)
	require.NoError(t, err)

	c.now = func() time.Time { return issuedAt.Add(72*time.Hour + time.Second) }
	_, err = c.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
	assert.True(t, errors.Is(err, common.ErrTokenExpired))
}

func TestTokenCodec_Rejects(t *testing.T) {
	now := time.Now()
	c := fixedCodec(t, now)

	valid, err := c.Issue("user-42")
	require.NoError(t, err)

	other, err := NewTokenCodec("another-secret", 0)
	require.NoError(t, err)
	foreign, err := other.Issue("user-42")
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-42"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	badSig := parts[0] + "." + parts[1] + "." + string(sig)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"wrong secret", foreign},
		{"hs512", hs512},
		{"alg none", none},
		{"no expiry", noExp},
		{"no subject", noSub},
		{"tampered payload", tampered},
		{"tampered signature", badSig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := c.Verify(tt.token)
			assert.Empty(t, sub)
			assert.True(t, errors.Is(err, common.ErrInvalidToken), "got %v", err)
			assert.False(t, errors.Is(err, common.ErrTokenExpired))
		})
	}
}
