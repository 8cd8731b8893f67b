package middleware

import (
	"context"
	"errors"
	"regexp"
	"runtime/debug"

	"github.com/Harsh-kumar-git/ManageMate/internal/config"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var dupKeyPattern = regexp.MustCompile(`dup key: \{ (.*?) \}`)

// ErrorHandler is the single terminal sink for failures. Every component
// raises typed errors instead of writing responses; this handler decides
// the final status and envelope for all of them. The validation gate is
// the one deliberate exception, since its failure mode is itself the
// validation envelope.
func ErrorHandler(cfg *config.Config, logger *logrus.Logger) fiber.ErrorHandler {
	production := cfg.Server.IsProduction()

	return func(c *fiber.Ctx, err error) error {
		status, envelope := normalize(err)

		if status >= fiber.StatusInternalServerError {
			logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"status": status,
				"stack":  string(debug.Stack()),
			}).Error("Request failed")
		} else {
			logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"status": status,
			}).Debug("Request rejected")
		}

		// Diagnostic detail never reaches clients in production.
		if !production {
			envelope.Stack = err.Error() + "\n" + string(debug.Stack())
		}

		return c.Status(status).JSON(envelope)
	}
}

// normalize pattern-matches a failure into its status code and envelope.
func normalize(err error) (int, apperr.Envelope) {
	// Malformed document id that escaped repository-level translation.
	if errors.Is(err, primitive.ErrInvalidHex) {
		return fiber.StatusBadRequest,
			apperr.NewEnvelope(fiber.StatusBadRequest, "Invalid _id: "+err.Error(), nil)
	}

	// Unique index violation on write.
	if mongo.IsDuplicateKeyError(err) {
		message := "Duplicate field value. Please use another value!"
		if match := dupKeyPattern.FindStringSubmatch(err.Error()); len(match) == 2 {
			message = "Duplicate field value: {" + match[1] + "}. Please use another value!"
		}
		return fiber.StatusBadRequest,
			apperr.NewEnvelope(fiber.StatusBadRequest, message, nil)
	}

	// Token faults bubbling up from lower layers.
	if errors.Is(err, jwt.ErrTokenExpired) {
		return fiber.StatusUnauthorized,
			apperr.NewEnvelope(fiber.StatusUnauthorized, "Your token has expired! Please log in again.", nil)
	}
	if errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) {
		return fiber.StatusUnauthorized,
			apperr.NewEnvelope(fiber.StatusUnauthorized, "Invalid token. Please log in again!", nil)
	}

	// Explicitly typed operational errors carry their own status, message
	// and field map.
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if !appErr.Operational() {
			return fiber.StatusInternalServerError,
				apperr.NewEnvelope(fiber.StatusInternalServerError, "Something went wrong", nil)
		}
		status := appErr.HTTPStatus()
		return status, apperr.NewEnvelope(status, appErr.Message, appErr.Fields)
	}

	// Framework-raised errors (unknown route methods, body limits).
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, apperr.NewEnvelope(fiberErr.Code, fiberErr.Message, nil)
	}

	// Persistence timeouts surface as a service-class failure.
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusServiceUnavailable,
			apperr.NewEnvelope(fiber.StatusServiceUnavailable, "Database operation failed", nil)
	}

	// Anything else is an unanticipated fault: generic message only.
	return fiber.StatusInternalServerError,
		apperr.NewEnvelope(fiber.StatusInternalServerError, "Something went wrong", nil)
}
