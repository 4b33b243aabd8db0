// Package workshop maps browser sessions to their configuration stores. One
// session owns exactly one store; there is no cross-session sharing.
package workshop

import (
	"sync"

	"rigforge/backend/builder"
)

// Manager hands out the builder.Store for a session id, creating it on first
// use. Stores live until the session is dropped or the process exits;
// in-progress edits are deliberately not persisted.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*builder.Store
}

func NewManager() *Manager {
	return &Manager{stores: make(map[string]*builder.Store)}
}

// Store returns the configuration store owned by sessionID.
func (m *Manager) Store(sessionID string) *builder.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stores[sessionID]
	if !ok {
		st = builder.NewStore()
		m.stores[sessionID] = st
	}
	return st
}

// Drop discards the store owned by sessionID, if any.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}

// Len reports how many sessions currently hold a store.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
