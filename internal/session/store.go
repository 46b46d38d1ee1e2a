package session

import (
	"context"
	"sync"
)

// Store keeps the current wallet id of named sessions between runs. An
// unknown name loads as an empty id.
type Store interface {
	Load(ctx context.Context, name string) (string, error)
	Save(ctx context.Context, name, walletID string) error
}

type MemoryStore struct {
	mu        sync.RWMutex
	walletIDs map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{walletIDs: make(map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.walletIDs[name], nil
}

func (m *MemoryStore) Save(_ context.Context, name, walletID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.walletIDs[name] = walletID
	return nil
}
