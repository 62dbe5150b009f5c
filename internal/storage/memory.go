package storage

import (
	"context"
	"sync"
)

// MemStore is a map-backed Store. It exists primarily so handler tests can
// run without touching the filesystem, and doubles as a throwaway backend
// (FD_STORE=memory).
type MemStore struct {
	mu    sync.RWMutex
	files map[string][]byte

	// FailWrites and FailList force errors for tests exercising the
	// handlers' failure branches.
	FailWrites error
	FailList   error
}

func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]byte)}
}

func (m *MemStore) Write(_ context.Context, filename string, data []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[filename] = buf
	return nil
}

func (m *MemStore) Read(_ context.Context, filename string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[filename]
	if !ok {
		return nil, ErrNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (m *MemStore) List(_ context.Context) ([]string, error) {
	if m.FailList != nil {
		return nil, m.FailList
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	return names, nil
}
