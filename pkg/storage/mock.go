package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/npc-engine/pkg/state"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// MockStorage is an in-memory implementation of Storage for testing.
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*state.Session
	worlds    map[string]*world.WorldDef
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[uuid.UUID]*state.Session),
		worlds:   make(map[string]*world.WorldDef),
	}
}

// SetPingError configures the mock to fail on ping with the given error.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddWorld registers a world definition for GetWorld/ListWorlds.
func (m *MockStorage) AddWorld(def *world.WorldDef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worlds[def.ID] = def
}

// Ping mocks storage ping.
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close.
func (m *MockStorage) Close() error {
	return nil
}

// SaveSession mocks saving a session.
func (m *MockStorage) SaveSession(ctx context.Context, id uuid.UUID, sess *state.Session) error {
	if sess == nil {
		return errors.New("session cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = sess
	return nil
}

// LoadSession mocks loading a session. Missing sessions return nil,
// not an error, matching the Redis implementation.
func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id], nil
}

// DeleteSession mocks deleting a session.
func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// ListWorlds mocks listing world ids.
func (m *MockStorage) ListWorlds(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.worlds))
	for id := range m.worlds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// GetWorld mocks loading a world definition.
func (m *MockStorage) GetWorld(ctx context.Context, id string) (*world.WorldDef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.worlds[id]
	if !ok {
		return nil, fmt.Errorf("world not found: %s", id)
	}
	return def, nil
}
