package wizard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tourdesk/internal/domain"
)

// Adapter is the persistence adapter bound to one session: the Saver side
// used by the store plus the cold-start Load path.
type Adapter interface {
	Saver
	Load(ctx context.Context) (domain.WizardState, bool)
}

// AdapterFactory builds the persistence adapter for a session ID.
type AdapterFactory func(sessionID string) Adapter

// Manager owns the live wizard sessions. Each session is one store keyed by
// a UUID; on a miss the manager tries to rehydrate the session from durable
// storage before giving up.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Store
	adapters AdapterFactory
}

// NewManager creates an empty session manager.
func NewManager(adapters AdapterFactory) *Manager {
	return &Manager{
		sessions: make(map[string]*Store),
		adapters: adapters,
	}
}

// Create starts a fresh session and returns its ID and store.
func (m *Manager) Create() (string, *Store) {
	id := uuid.NewString()
	store := NewStore(m.adapters(id))

	m.mu.Lock()
	m.sessions[id] = store
	m.mu.Unlock()

	return id, store
}

// Get returns the store for id, rehydrating it from durable storage if the
// process has no live copy. Returns ErrSessionNotFound if neither exists.
func (m *Manager) Get(ctx context.Context, id string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.sessions[id]; ok {
		return store, nil
	}

	adapter := m.adapters(id)
	state, ok := adapter.Load(ctx)
	if !ok {
		return nil, ErrSessionNotFound
	}
	store := NewStoreFrom(state, adapter)
	m.sessions[id] = store
	return store, nil
}

// Remove resets the session's store (clearing durable storage with it) and
// evicts it from memory. Removing an unknown session is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	store, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		store.ResetWizard()
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
