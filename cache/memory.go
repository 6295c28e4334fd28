package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	payload  []byte
	storedAt time.Time
}

// Memory is a process-local Store with a fixed TTL. Freshness is checked at
// lookup time; a stale entry is treated as absent but left in place until it
// is overwritten or swept.
type Memory struct {
	mu        sync.Mutex
	items     map[string]memoryItem
	ttl       time.Duration
	sweepSize int
	stats     Stats
	now       func() time.Time
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) { m.ttl = ttl }
}

// WithSweepSize sets the entry count above which Put sweeps expired entries.
// Zero disables sweeping.
func WithSweepSize(n int) MemoryOption {
	return func(m *Memory) { m.sweepSize = n }
}

func withClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		items:     make(map[string]memoryItem),
		ttl:       DefaultTTL,
		sweepSize: 1024,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[key]
	if !ok || m.now().Sub(item.storedAt) >= m.ttl {
		m.stats.Misses++
		return nil, ErrMiss
	}

	m.stats.Hits++
	return item.payload, nil
}

func (m *Memory) Put(ctx context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = memoryItem{payload: payload, storedAt: m.now()}
	m.stats.Sets++

	if m.sweepSize > 0 && len(m.items) > m.sweepSize {
		m.sweep()
	}
	return nil
}

// sweep drops expired entries. Caller holds the lock.
func (m *Memory) sweep() {
	cutoff := m.now().Add(-m.ttl)
	for key, item := range m.items {
		if item.storedAt.Before(cutoff) {
			delete(m.items, key)
		}
	}
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
