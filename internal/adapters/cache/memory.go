package cache

import (
	"context"
	"sync"
	"time"

	"github.com/okian/edgeboard/internal/domain/table"
)

type entry struct {
	t       *table.Table
	expires time.Time
}

// Memory is an in-process cache. Expired entries are dropped on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{entries: make(map[string]entry), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backend implements Cache.
func (m *Memory) Backend() string { return "memory" }

// Get implements Cache.
func (m *Memory) Get(_ context.Context, id string) (*table.Table, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrMiss
	}
	if !m.now().Before(e.expires) {
		m.mu.Lock()
		if cur, still := m.entries[id]; still && cur.expires.Equal(e.expires) {
			delete(m.entries, id)
		}
		m.mu.Unlock()
		return nil, ErrMiss
	}
	return e.t, nil
}

// Set implements Cache.
func (m *Memory) Set(_ context.Context, id string, t *table.Table, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[id] = entry{t: t, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
