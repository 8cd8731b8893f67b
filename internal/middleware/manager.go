package middleware

import (
	"fmt"

	"github.com/Harsh-kumar-git/ManageMate/internal/auth"
	"github.com/Harsh-kumar-git/ManageMate/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Manager holds all middleware instances
type Manager struct {
	Guard       *AuthGuard
	GlobalLimit *RateLimiter
	AuthLimit   *RateLimiter
	APILimit    *RateLimiter
	ErrorLogger *ErrorLogger
	RedisClient *redis.Client
	Logger      *logrus.Logger
}

// NewManager wires the middleware stack: the auth guard and the three
// independent rate-limit tiers over the configured counter store.
func NewManager(cfg *config.Config, tokens *auth.TokenService, logger *logrus.Logger) (*Manager, error) {
	m := &Manager{
		Guard:       NewAuthGuard(tokens, logger),
		ErrorLogger: NewErrorLogger(logger),
		Logger:      logger,
	}

	var counters CounterStore
	switch cfg.RateLimit.Store {
	case "redis":
		redisClient, err := NewRedisClient(&cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis client: %w", err)
		}
		m.RedisClient = redisClient
		counters = NewRedisCounterStore(redisClient)
	default:
		counters = NewMemoryCounterStore()
	}

	enabled := cfg.RateLimit.Enabled
	m.GlobalLimit = NewRateLimiter("global", cfg.RateLimit.Global, enabled, counters, logger)
	m.AuthLimit = NewRateLimiter("auth", cfg.RateLimit.Auth, enabled, counters, logger)
	m.APILimit = NewRateLimiter("api", cfg.RateLimit.API, enabled, counters, logger)

	return m, nil
}

// Close releases middleware resources
func (m *Manager) Close() error {
	if m.RedisClient != nil {
		return m.RedisClient.Close()
	}
	return nil
}
