package auth

import (
	"fmt"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies signed, time-bounded bearer tokens.
// Tokens are stateless: a token stays valid until its encoded expiry and
// there is no revocation list.
type TokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewTokenService creates a token service from JWT configuration
func NewTokenService(cfg *config.JWTConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.Secret),
		expiry: cfg.Expiry,
		issuer: cfg.Issuer,
	}
}

// Issue mints an HS256 token for the given subject id. Returns the
// signed token and its lifetime in seconds.
func (t *TokenService) Issue(subject string) (string, int, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int(t.expiry.Seconds()), nil
}

// Verify checks signature and expiry and returns the subject id. The
// returned error preserves the jwt sentinel (expired, signature invalid)
// for diagnostics; callers must not expose it verbatim to clients.
func (t *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("token is invalid")
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("sub claim is required")
	}

	return claims.Subject, nil
}
