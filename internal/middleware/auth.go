package middleware

import (
	"strings"

	"github.com/Harsh-kumar-git/ManageMate/internal/auth"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const userIDKey = "user_id"

// guardMessage is the single client-facing wording for every token
// failure. The specific sub-cause (missing, malformed, bad signature,
// expired) is logged but never disclosed.
const guardMessage = "Invalid or expired token. Please log in again."

// AuthGuard verifies bearer tokens and attaches the resolved subject id
// to the request context. It trusts the signed subject and does not hit
// the credential store.
type AuthGuard struct {
	tokens *auth.TokenService
	logger *logrus.Logger
}

// NewAuthGuard creates the bearer-token middleware
func NewAuthGuard(tokens *auth.TokenService, logger *logrus.Logger) *AuthGuard {
	return &AuthGuard{tokens: tokens, logger: logger}
}

// Authenticate rejects requests without a valid bearer token
func (a *AuthGuard) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			a.logger.WithField("path", c.Path()).Debug("Missing authorization header")
			return apperr.Authentication(guardMessage)
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			a.logger.WithField("path", c.Path()).Debug("Malformed authorization header")
			return apperr.Authentication(guardMessage)
		}

		tokenString := authHeader[len(bearerPrefix):]
		if tokenString == "" {
			a.logger.WithField("path", c.Path()).Debug("Empty bearer token")
			return apperr.Authentication(guardMessage)
		}

		subject, err := a.tokens.Verify(tokenString)
		if err != nil {
			a.logger.WithError(err).WithField("path", c.Path()).Debug("Token verification failed")
			return apperr.Authentication(guardMessage)
		}

		c.Locals(userIDKey, subject)
		return c.Next()
	}
}

// GetUserID extracts the authenticated subject id from the request context
func GetUserID(c *fiber.Ctx) string {
	if userID, ok := c.Locals(userIDKey).(string); ok {
		return userID
	}
	return ""
}
