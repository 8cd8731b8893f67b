package middleware

import (
	"context"
	"sync"
	"time"
)

// windowRecord holds one key's fixed-window state.
type windowRecord struct {
	start time.Time
	count int64
}

// MemoryCounterStore is the in-process CounterStore for single-instance
// deployments. Counters reset lazily when their window elapses.
type MemoryCounterStore struct {
	mu      sync.Mutex
	windows map[string]*windowRecord
	now     func() time.Time
}

// NewMemoryCounterStore creates an in-memory counter store
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		windows: make(map[string]*windowRecord),
		now:     time.Now,
	}
}

// Incr atomically bumps the counter for key within the current window
func (m *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	rec, ok := m.windows[key]
	if !ok || now.Sub(rec.start) >= window {
		rec = &windowRecord{start: now}
		m.windows[key] = rec
	}

	rec.count++
	return rec.count, rec.start.Add(window), nil
}
