package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryBackend is a process-local [Backend]. Entries do not survive
// restarts; it mirrors the SQLite backend's TTL behavior.
type MemoryBackend struct {
	defaultTTL time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend(defaultTTL time.Duration) *MemoryBackend {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &MemoryBackend{
		defaultTTL: defaultTTL,
		entries:    make(map[string]memoryEntry),
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || !time.Now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
