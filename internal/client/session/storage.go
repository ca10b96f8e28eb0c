package session

import (
	"context"
	"sync"
)

// Storage is the key/value persistence the store writes through.
// metadata.SQLiteRepository satisfies it.
type Storage interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	SetAll(ctx context.Context, values map[string][]byte) error
	DeleteAll(ctx context.Context, keys ...string) error
}

// MemoryStorage keeps values for the life of the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStorage) SetAll(_ context.Context, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = append([]byte(nil), v...)
	}
	return nil
}

func (m *MemoryStorage) DeleteAll(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}
