package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/internal/config"
	"github.com/Harsh-kumar-git/ManageMate/internal/metrics"
	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CounterStore tracks fixed-window request counts per key. Implementations
// must increment atomically with respect to concurrent requests.
type CounterStore interface {
	// Incr bumps the counter for key within the current window and
	// returns the new count and the time the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// RateLimiter is one ingress throttle tier keyed by client address.
// Tiers are independent: each keeps its own counters.
type RateLimiter struct {
	name    string
	tier    config.TierConfig
	enabled bool
	store   CounterStore
	logger  *logrus.Logger
}

// NewRateLimiter creates a rate limiter tier over the given counter store
func NewRateLimiter(name string, tier config.TierConfig, enabled bool, store CounterStore, logger *logrus.Logger) *RateLimiter {
	return &RateLimiter{
		name:    name,
		tier:    tier,
		enabled: enabled,
		store:   store,
		logger:  logger,
	}
}

// Handle enforces the tier's ceiling within its window
func (r *RateLimiter) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !r.enabled {
			return c.Next()
		}

		key := "ratelimit:" + r.name + ":" + clientIP(c)

		count, resetAt, err := r.store.Incr(c.Context(), key, r.tier.Window)
		if err != nil {
			// Allow the request on counter store failure rather than
			// blocking traffic.
			r.logger.WithError(err).WithField("tier", r.name).Error("Rate limit check failed")
			return c.Next()
		}

		r.setHeaders(c, count, resetAt)

		if count > int64(r.tier.Max) {
			metrics.RecordRateLimitDrop(r.name)
			r.logger.WithFields(logrus.Fields{
				"tier":   r.name,
				"key":    key,
				"path":   c.Path(),
				"method": c.Method(),
				"count":  count,
			}).Warn("Rate limit exceeded")

			return apperr.RateLimit(r.tier.Message)
		}

		return c.Next()
	}
}

// setHeaders exposes the standard draft rate-limit headers. The legacy
// X-RateLimit-* family is deliberately not sent.
func (r *RateLimiter) setHeaders(c *fiber.Ctx, count int64, resetAt time.Time) {
	remaining := int64(r.tier.Max) - count
	if remaining < 0 {
		remaining = 0
	}

	resetSeconds := int64(time.Until(resetAt).Seconds())
	if resetSeconds < 0 {
		resetSeconds = 0
	}

	c.Set("RateLimit-Limit", strconv.Itoa(r.tier.Max))
	c.Set("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	c.Set("RateLimit-Reset", strconv.FormatInt(resetSeconds, 10))

	if remaining == 0 {
		retryAfter := resetSeconds + 1
		c.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
	}
}

// clientIP extracts the real client address, preferring load balancer
// forwarding headers over the socket peer.
func clientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.IP()
}
