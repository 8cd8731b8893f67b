package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindAuthentication, http.StatusUnauthorized},
		{KindAuthorization, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindDuplicate, http.StatusConflict},
		{KindRateLimit, http.StatusTooManyRequests},
		{KindService, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := New(tt.kind, "boom")
		assert.Equal(t, tt.status, err.HTTPStatus(), "kind %s", tt.kind)
	}

	// Unknown kinds degrade to 500
	assert.Equal(t, http.StatusInternalServerError, New(Kind("BOGUS"), "x").HTTPStatus())
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(KindService, "Database operation failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "Database operation failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsKind(t *testing.T) {
	err := NotFound("Client")

	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))

	// Works through wrapping
	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, IsKind(wrapped, KindNotFound))
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Client not found", NotFound("Client").Message)
	assert.Equal(t, "Item not found", NotFound("Item").Message)
}

func TestOperational(t *testing.T) {
	assert.True(t, Validation("bad input", nil).Operational())
	assert.True(t, RateLimit("").Operational())
	assert.False(t, New(KindInternal, "bug").Operational())
}

func TestConstructorDefaults(t *testing.T) {
	assert.Equal(t, "Authentication failed", Authentication("").Message)
	assert.Equal(t, "Not authorized to perform this action", Authorization("").Message)
	assert.Equal(t, "Too many requests", RateLimit("").Message)
	assert.Equal(t, "Service temporarily unavailable", Service("", nil).Message)
}

func TestStatusWord(t *testing.T) {
	assert.Equal(t, "fail", StatusWord(http.StatusBadRequest))
	assert.Equal(t, "fail", StatusWord(http.StatusTooManyRequests))
	assert.Equal(t, "error", StatusWord(http.StatusInternalServerError))
	assert.Equal(t, "error", StatusWord(http.StatusServiceUnavailable))
}

func TestNewEnvelope(t *testing.T) {
	fields := map[string]string{"email": "The field 'email' must be a valid email address."}
	env := NewEnvelope(http.StatusBadRequest, "Validation failed", fields)

	require.Equal(t, "fail", env.Status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Equal(t, fields, env.Errors)
	assert.Empty(t, env.Stack)
}
