package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret: "test-secret",
		Expiry: 24 * time.Hour,
		Issuer: "managemate-api",
	}
}

func TestTokenServiceIssueAndVerify(t *testing.T) {
	tokens := NewTokenService(testJWTConfig())

	signed, expiresIn, err := tokens.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.Equal(t, int((24 * time.Hour).Seconds()), expiresIn)

	subject, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Expiry = -time.Minute // already expired at issuance
	tokens := NewTokenService(cfg)

	signed, _, err := tokens.Issue("user-123")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.Error(t, err)
	// The jwt sentinel survives wrapping so the error handler can map it
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	tokens := NewTokenService(testJWTConfig())

	signed, _, err := tokens.Issue("user-123")
	require.NoError(t, err)

	other := NewTokenService(&config.JWTConfig{Secret: "different", Expiry: time.Hour})
	_, err = other.Verify(signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	tokens := NewTokenService(testJWTConfig())

	_, err := tokens.Verify("not.a.token")
	assert.Error(t, err)

	_, err = tokens.Verify("")
	assert.Error(t, err)
}

func TestTokenServiceRejectsUnsignedToken(t *testing.T) {
	tokens := NewTokenService(testJWTConfig())

	// alg=none tokens must never verify
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}

func TestTokenServiceRequiresSubject(t *testing.T) {
	tokens := NewTokenService(testJWTConfig())

	signed, _, err := tokens.Issue("")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}
