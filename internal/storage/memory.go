package storage

import (
	"context"
	"sync"
)

// MemoryKV keeps session state in process memory. Used in development and
// in tests; state does not survive a restart.
type MemoryKV struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{store: make(map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.store[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.store[key] = stored
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}

func (m *MemoryKV) Ping(ctx context.Context) error {
	return nil
}
