package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/config"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testTier(max int, window time.Duration, message string) config.TierConfig {
	return config.TierConfig{Window: window, Max: max, Message: message}
}

// limiterApp wires a limiter in front of a trivial handler with the real
// error handler, so 429 envelopes come out the same way they do in
// production.
func limiterApp(limiter *RateLimiter) *fiber.App {
	cfg := &config.Config{Server: config.ServerConfig{Environment: "production"}}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(cfg, testLogger())})
	app.Get("/", limiter.Handle(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	store := NewMemoryCounterStore()
	limiter := NewRateLimiter("auth", testTier(5, time.Hour, "Too many login attempts"), true, store, testLogger())
	app := limiterApp(limiter)

	for i := 1; i <= 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "request %d", i)
		assert.Equal(t, "5", resp.Header.Get("RateLimit-Limit"))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	var env apperr.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "Too many login attempts", env.Message)
}

func TestRateLimiterRemainingHeaderCountsDown(t *testing.T) {
	store := NewMemoryCounterStore()
	limiter := NewRateLimiter("api", testTier(3, time.Minute, ""), true, store, testLogger())
	app := limiterApp(limiter)

	for _, want := range []string{"2", "1", "0"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.Header.Get("RateLimit-Remaining"))
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	now := time.Now()
	store := NewMemoryCounterStore()
	store.now = func() time.Time { return now }

	limiter := NewRateLimiter("auth", testTier(2, time.Hour, ""), true, store, testLogger())
	app := limiterApp(limiter)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// Advance past the window, the counter lazily resets
	now = now.Add(time.Hour + time.Second)

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("RateLimit-Remaining"))
}

func TestRateLimiterTiersAreIndependent(t *testing.T) {
	store := NewMemoryCounterStore()
	authLimiter := NewRateLimiter("auth", testTier(1, time.Hour, ""), true, store, testLogger())
	apiLimiter := NewRateLimiter("api", testTier(5, time.Hour, ""), true, store, testLogger())

	cfg := &config.Config{Server: config.ServerConfig{Environment: "production"}}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(cfg, testLogger())})
	app.Get("/auth", authLimiter.Handle(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api", apiLimiter.Handle(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	// Exhaust the auth tier
	resp, err := app.Test(httptest.NewRequest("GET", "/auth", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/auth", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// The api tier keeps its own counter
	resp, err = app.Test(httptest.NewRequest("GET", "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimiterKeysByClientIP(t *testing.T) {
	store := NewMemoryCounterStore()
	limiter := NewRateLimiter("global", testTier(1, time.Hour, ""), true, store, testLogger())
	app := limiterApp(limiter)

	first := httptest.NewRequest("GET", "/", nil)
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	resp, err := app.Test(first)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	again := httptest.NewRequest("GET", "/", nil)
	again.Header.Set("X-Forwarded-For", "10.0.0.1")
	resp, err = app.Test(again)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// A different client address is unaffected
	other := httptest.NewRequest("GET", "/", nil)
	other.Header.Set("X-Forwarded-For", "10.0.0.2")
	resp, err = app.Test(other)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimiterDisabled(t *testing.T) {
	store := NewMemoryCounterStore()
	limiter := NewRateLimiter("global", testTier(1, time.Hour, ""), false, store, testLogger())
	app := limiterApp(limiter)

	for i := 0; i < 10; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

type failingCounterStore struct{}

func (failingCounterStore) Incr(context.Context, string, time.Duration) (int64, time.Time, error) {
	return 0, time.Time{}, errors.New("counter store down")
}

func TestRateLimiterFailsOpen(t *testing.T) {
	limiter := NewRateLimiter("global", testTier(1, time.Hour, ""), true, failingCounterStore{}, testLogger())
	app := limiterApp(limiter)

	// Counter store failures must not block traffic
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestClientIPPrefersForwardingHeaders(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = clientIP(c)
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", got)

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.8")
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.8", got)
}
