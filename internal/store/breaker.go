package store

import (
	"sync"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/sirupsen/logrus"
)

// BreakerState represents the current state of the circuit breaker
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

// Breaker guards document store calls. After enough consecutive failures
// it opens and rejects calls immediately with a Service error, so a dead
// database cannot tie up every request waiting on timeouts.
type Breaker struct {
	logger            *logrus.Logger
	state             BreakerState
	failureCount      int
	successCount      int
	lastFailureTime   time.Time
	mu                sync.RWMutex
	maxFailures       int           // Open circuit after N failures
	resetTimeout      time.Duration // Wait before trying half-open
	halfOpenSuccesses int           // Required successes to close circuit
}

// NewBreaker creates a circuit breaker for the document store
func NewBreaker(logger *logrus.Logger) *Breaker {
	return &Breaker{
		logger:            logger,
		state:             StateClosed,
		maxFailures:       5,
		resetTimeout:      10 * time.Second,
		halfOpenSuccesses: 3,
	}
}

// Execute runs a store operation with circuit breaker protection
func (cb *Breaker) Execute(fn func() error) error {
	cb.mu.RLock()
	state := cb.state
	cb.mu.RUnlock()

	// If circuit is open, check if we should try half-open
	if state == StateOpen {
		cb.mu.Lock()
		if time.Since(cb.lastFailureTime) > cb.resetTimeout {
			cb.state = StateHalfOpen
			cb.successCount = 0
			cb.logger.Info("Store circuit breaker: OPEN → HALF_OPEN (retry attempt)")
			cb.mu.Unlock()
		} else {
			cb.mu.Unlock()
			return apperr.Service("Database operation failed", nil)
		}
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure(err)
		return err
	}

	cb.onSuccess()
	return nil
}

// onFailure handles a failed store operation
func (cb *Breaker) onFailure(err error) {
	cb.failureCount++
	cb.lastFailureTime = time.Now()

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= cb.maxFailures {
			cb.state = StateOpen
			cb.logger.WithFields(logrus.Fields{
				"failure_count": cb.failureCount,
				"error":         err.Error(),
			}).Error("Store circuit breaker: CLOSED → OPEN")
		}

	case StateHalfOpen:
		cb.state = StateOpen
		cb.failureCount = 0
		cb.logger.WithError(err).Error("Store circuit breaker: HALF_OPEN → OPEN (store still unhealthy)")
	}
}

// onSuccess handles a successful store operation
func (cb *Breaker) onSuccess() {
	cb.successCount++

	switch cb.state {
	case StateClosed:
		if cb.failureCount > 0 {
			cb.failureCount = 0
		}

	case StateHalfOpen:
		if cb.successCount >= cb.halfOpenSuccesses {
			cb.state = StateClosed
			cb.failureCount = 0
			cb.successCount = 0
			cb.logger.Info("Store circuit breaker: HALF_OPEN → CLOSED (store recovered)")
		}
	}
}

// State returns the current circuit breaker state
func (cb *Breaker) State() BreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}
