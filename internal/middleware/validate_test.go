package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Harsh-kumar-git/ManageMate/internal/models"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructAggregatesAllViolations(t *testing.T) {
	fieldErrors := ValidateStruct(&models.RegisterRequest{})

	// One entry per invalid field, keyed by JSON tag
	require.Len(t, fieldErrors, 3)
	assert.Contains(t, fieldErrors, "name")
	assert.Contains(t, fieldErrors, "email")
	assert.Contains(t, fieldErrors, "password")
	assert.Equal(t, "The field 'name' is required.", fieldErrors["name"])
}

func TestValidateStructPasswordRule(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all rules satisfied", "Passw0rd123", true},
		{"missing uppercase", "passw0rd123", false},
		{"missing lowercase", "PASSW0RD123", false},
		{"missing digit", "Passwordonly", false},
		{"too short", "Pa1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fieldErrors := ValidateStruct(&models.RegisterRequest{
				Name:     "Harsh",
				Email:    "harsh@example.com",
				Password: tt.password,
			})
			if tt.valid {
				assert.Empty(t, fieldErrors)
			} else {
				assert.Contains(t, fieldErrors, "password")
			}
		})
	}
}

func TestValidateStructEmailRule(t *testing.T) {
	fieldErrors := ValidateStruct(&models.LoginRequest{
		Email:    "not-an-email",
		Password: "Passw0rd123",
	})
	require.Contains(t, fieldErrors, "email")
	assert.Equal(t, "The field 'email' must be a valid email address.", fieldErrors["email"])
}

func TestValidateBody(t *testing.T) {
	app := fiber.New()
	app.Post("/register", ValidateBody[models.RegisterRequest](), func(c *fiber.Ctx) error {
		return c.JSON(Payload[models.RegisterRequest](c))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/register", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var env apperr.Envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.Equal(t, "fail", env.Status)
		assert.Equal(t, "Invalid request body", env.Message)
	})

	t.Run("invalid fields", func(t *testing.T) {
		body := `{"name":"H","email":"nope","password":"short"}`
		req := httptest.NewRequest("POST", "/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var env apperr.Envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.Equal(t, "fail", env.Status)
		assert.Equal(t, "Validation failed", env.Message)
		assert.Contains(t, env.Errors, "name")
		assert.Contains(t, env.Errors, "email")
		assert.Contains(t, env.Errors, "password")
	})

	t.Run("valid body reaches the handler", func(t *testing.T) {
		body := `{"name":"Harsh","email":"harsh@example.com","password":"Passw0rd123"}`
		req := httptest.NewRequest("POST", "/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		echoed, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(echoed), "harsh@example.com")
	})
}
