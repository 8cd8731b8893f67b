package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/Harsh-kumar-git/ManageMate/internal/config"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// errorApp returns an app whose /fail route fails with the given error.
func errorApp(environment string, failWith error) *fiber.App {
	cfg := &config.Config{Server: config.ServerConfig{Environment: environment}}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(cfg, testLogger())})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return failWith
	})
	return app
}

func failAndDecode(t *testing.T, failWith error) (int, apperr.Envelope) {
	t.Helper()

	app := errorApp("production", failWith)
	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)

	var env apperr.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func dupKeyError(detail string) error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: managemate.users index: email_1 dup key: { " + detail + " }",
	}}}
}

func TestErrorHandlerTypedErrors(t *testing.T) {
	status, env := failAndDecode(t, apperr.NotFound("Client"))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "Client not found", env.Message)

	status, env = failAndDecode(t, apperr.Authentication("Incorrect email or password"))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Incorrect email or password", env.Message)

	status, env = failAndDecode(t, apperr.Duplicate("Email already exists"))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Email already exists", env.Message)

	status, env = failAndDecode(t, apperr.RateLimit("Too many requests from this IP"))
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "Too many requests from this IP", env.Message)

	status, env = failAndDecode(t, apperr.Service("Database operation failed", nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Database operation failed", env.Message)
}

func TestErrorHandlerValidationFields(t *testing.T) {
	fields := map[string]string{"email": "The field 'email' must be a valid email address."}
	status, env := failAndDecode(t, apperr.Validation("Validation failed", fields))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, fields, env.Errors)
}

func TestErrorHandlerInternalKindIsMasked(t *testing.T) {
	status, env := failAndDecode(t, apperr.Wrap(apperr.KindInternal, "nil pointer in report builder", nil))

	// Non-operational failures never leak their message
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Something went wrong", env.Message)
}

func TestErrorHandlerJWTSentinels(t *testing.T) {
	status, env := failAndDecode(t, fmt.Errorf("token verification failed: %w", jwt.ErrTokenExpired))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Your token has expired! Please log in again.", env.Message)

	status, env = failAndDecode(t, fmt.Errorf("token verification failed: %w", jwt.ErrTokenSignatureInvalid))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token. Please log in again!", env.Message)

	status, env = failAndDecode(t, fmt.Errorf("token verification failed: %w", jwt.ErrTokenMalformed))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token. Please log in again!", env.Message)
}

func TestErrorHandlerDuplicateKey(t *testing.T) {
	status, env := failAndDecode(t, dupKeyError(`email: "x@y.com"`))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, `Duplicate field value: {email: "x@y.com"}. Please use another value!`, env.Message)
}

func TestErrorHandlerInvalidObjectID(t *testing.T) {
	_, err := primitive.ObjectIDFromHex("nope")
	require.Error(t, err)

	status, env := failAndDecode(t, err)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Message, "Invalid _id")
}

func TestErrorHandlerFiberErrors(t *testing.T) {
	status, env := failAndDecode(t, fiber.ErrMethodNotAllowed)
	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
	assert.Equal(t, "fail", env.Status)
}

func TestErrorHandlerTimeout(t *testing.T) {
	status, env := failAndDecode(t, fmt.Errorf("find users: %w", context.DeadlineExceeded))
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "Database operation failed", env.Message)
}

func TestErrorHandlerUnknownError(t *testing.T) {
	status, env := failAndDecode(t, fmt.Errorf("mystery failure"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Something went wrong", env.Message)
}

func TestErrorHandlerStackVisibility(t *testing.T) {
	// Development responses carry diagnostics
	app := errorApp("development", apperr.NotFound("Client"))
	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)

	var env apperr.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.NotEmpty(t, env.Stack)

	// Production responses never do
	_, env = failAndDecode(t, apperr.NotFound("Client"))
	assert.Empty(t, env.Stack)
}
