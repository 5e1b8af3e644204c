package mocks

import (
	"context"
	"sync"

	"github.com/user/bannerkit/pkg/ports"
)

// KeyValueStore is an in-memory implementation of ports.KeyValueStore.
type KeyValueStore struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc func(ctx context.Context, key string, value []byte) error

	SetCalls []string
}

// NewKeyValueStore creates an empty store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{values: make(map[string][]byte)}
}

func (m *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.SetCalls = append(m.SetCalls, key)
	m.mu.Unlock()
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Put seeds a raw value (for test setup).
func (m *KeyValueStore) Put(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = []byte(value)
}

// Raw returns a stored value (for test verification).
func (m *KeyValueStore) Raw(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return string(v), ok
}

var _ ports.KeyValueStore = (*KeyValueStore)(nil)
