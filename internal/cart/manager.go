package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager keys cart stores by session ID. Carts are created on first touch
// and dropped when the session settles at checkout or goes stale.
type Manager struct {
	mu     sync.RWMutex
	carts  map[string]*entry
	ttl    time.Duration
	logger *zap.Logger
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

// DefaultSessionTTL matches a browser session: carts untouched for this long
// are eligible for the expiry sweep.
const DefaultSessionTTL = 24 * time.Hour

// NewManager creates a session cart manager
func NewManager(ttl time.Duration, logger *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Manager{
		carts:  make(map[string]*entry),
		ttl:    ttl,
		logger: logger,
	}
}

// NewSessionID mints a fresh cart session identifier
func (m *Manager) NewSessionID() string {
	return uuid.New().String()
}

// Get returns the cart for the session, creating an empty one on first touch
func (m *Manager) Get(sessionID string) *Store {
	m.mu.RLock()
	e, ok := m.carts[sessionID]
	m.mu.RUnlock()

	if ok {
		m.mu.Lock()
		e.lastSeen = time.Now()
		m.mu.Unlock()
		return e.store
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Re-check under the write lock
	if e, ok := m.carts[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.store
	}
	e = &entry{store: NewStore(), lastSeen: time.Now()}
	m.carts[sessionID] = e
	return e.store
}

// Drop removes a session's cart, typically after a settled checkout
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	delete(m.carts, sessionID)
	m.mu.Unlock()
}

// Len reports the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.carts)
}

// Sweep drops carts idle beyond the session TTL and returns how many were
// removed
func (m *Manager) Sweep() int {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.carts {
		if e.lastSeen.Before(cutoff) {
			delete(m.carts, id)
			removed++
		}
	}
	if removed > 0 && m.logger != nil {
		m.logger.Info("Swept expired cart sessions", zap.Int("removed", removed))
	}
	return removed
}
