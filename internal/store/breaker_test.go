package store

import (
	"errors"
	"testing"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker() *Breaker {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewBreaker(logger)
}

func failStore(cb *Breaker, times int) {
	for i := 0; i < times; i++ {
		_ = cb.Execute(func() error { return errors.New("connection refused") })
	}
}

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := newTestBreaker()
	require.Equal(t, StateClosed, cb.State())

	failStore(cb, cb.maxFailures)
	assert.Equal(t, StateOpen, cb.State())

	// Calls are rejected without reaching the store
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, apperr.IsKind(err, apperr.KindService))
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := newTestBreaker()

	failStore(cb, cb.maxFailures-1)
	require.NoError(t, cb.Execute(func() error { return nil }))

	// The earlier failures no longer count toward opening
	failStore(cb, cb.maxFailures-1)
	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := newTestBreaker()
	cb.resetTimeout = time.Millisecond

	failStore(cb, cb.maxFailures)
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(5 * time.Millisecond)

	for i := 0; i < cb.halfOpenSuccesses; i++ {
		require.NoError(t, cb.Execute(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb := newTestBreaker()
	cb.resetTimeout = time.Millisecond

	failStore(cb, cb.maxFailures)
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(5 * time.Millisecond)

	// The probe call fails, the circuit snaps back open
	failStore(cb, 1)
	assert.Equal(t, StateOpen, cb.State())
}

func TestIsOperational(t *testing.T) {
	assert.True(t, isOperational(apperr.NotFound("Client")))
	assert.True(t, isOperational(apperr.Duplicate("Email already exists")))
	assert.False(t, isOperational(errors.New("connection refused")))
}
