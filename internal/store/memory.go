package store

import (
	"context"
	"sync"
)

// MemoryStore implements Slots in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string][]byte{}}
}

func (m *MemoryStore) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.slots[name]
	if !ok {
		return nil, ErrNoSlot
	}
	return append([]byte(nil), doc...), nil
}

func (m *MemoryStore) Save(_ context.Context, name string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[name] = append([]byte(nil), doc...)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
