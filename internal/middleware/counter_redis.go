package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixed-window increment: bump the counter, arm the expiry on first hit,
// return the count and the remaining window in milliseconds.
const counterScript = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}`

// RedisCounterStore is a CounterStore backed by Redis, for deployments
// with more than one instance sharing rate-limit state.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a Redis-backed counter store
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// Incr atomically bumps the counter for key within the current window
func (r *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	result, err := r.client.Eval(ctx, counterScript, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to execute counter script: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected counter script result: %v", result)
	}

	count, ok := values[0].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("failed to parse counter result")
	}

	ttlMs, ok := values[1].(int64)
	if !ok || ttlMs < 0 {
		ttlMs = window.Milliseconds()
	}

	resetAt := time.Now().Add(time.Duration(ttlMs) * time.Millisecond)
	return count, resetAt, nil
}
