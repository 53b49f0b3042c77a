package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory is an in-process Cache. Expired entries are dropped lazily on
// read and overwritten on write.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
	ttl     time.Duration
	now     Clock
}

// NewMemory creates an in-memory cache with the given TTL. A nil clock
// uses time.Now.
func NewMemory[T any](ttl time.Duration, now Clock) *Memory[T] {
	if now == nil {
		now = time.Now
	}
	return &Memory[T]{
		entries: make(map[string]memoryEntry[T]),
		ttl:     ttl,
		now:     now,
	}
}

func (m *Memory[T]) Get(_ context.Context, key string) (T, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false, nil
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return zero, false, nil
	}
	return entry.value, true, nil
}

func (m *Memory[T]) Set(_ context.Context, key string, value T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry[T]{
		value:     value,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *Memory[T]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
