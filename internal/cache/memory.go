package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and zero-config runs. TTLs
// are enforced lazily at read time.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	nowFunc func() time.Time
}

type memoryEntry struct {
	entry     *Entry
	raw       json.RawMessage
	expiresAt time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		nowFunc: time.Now,
	}
}

// WithNow fixes the clock for tests.
func (m *MemoryStore) WithNow(now func() time.Time) *MemoryStore {
	m.nowFunc = now
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	me, ok := m.entries[key]
	if !ok || me.entry == nil || m.nowFunc().After(me.expiresAt) {
		return nil, ErrNotFound
	}
	return me.entry, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, entry *Entry, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{entry: entry, expiresAt: m.nowFunc().Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) GetRawJSON(_ context.Context, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	me, ok := m.entries[key]
	if !ok || me.raw == nil || m.nowFunc().After(me.expiresAt) {
		return nil, ErrNotFound
	}
	return me.raw, nil
}

func (m *MemoryStore) SetRawJSON(_ context.Context, key string, data json.RawMessage, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{raw: data, expiresAt: m.nowFunc().Add(ttl)}
	return nil
}

func (m *MemoryStore) Ping(_ context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
