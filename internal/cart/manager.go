package cart

import (
	"sync"
	"time"
)

// Manager owns one Store per browser session. Carts are created on first use
// and dropped when the session goes idle past its TTL.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

type entry struct {
	store      *Store
	lastAccess time.Time
}

// NewManager builds an empty session cart manager.
func NewManager() *Manager {
	return &Manager{
		entries: map[string]*entry{},
		now:     time.Now,
	}
}

// Get returns the cart for the session, creating it on first use.
func (m *Manager) Get(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[sessionID]
	if !ok {
		e = &entry{store: NewStore()}
		m.entries[sessionID] = e
	}
	e.lastAccess = m.now()
	return e.store
}

// Drop removes the session's cart entirely.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
}

// PruneIdle removes carts whose sessions have not been touched within ttl and
// reports how many were dropped.
func (m *Manager) PruneIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	pruned := 0
	for sessionID, e := range m.entries {
		if e.lastAccess.Before(cutoff) {
			delete(m.entries, sessionID)
			pruned++
		}
	}
	return pruned
}

// Len reports the number of live session carts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
