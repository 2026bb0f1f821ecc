// Package session keeps one live cart per storefront client. A cart is
// private to its session; there is no cross-session synchronization.
package session

import (
	"sync"
	"time"

	"cafe-pos/cart"
	"cafe-pos/checkout"
	"cafe-pos/notify"

	"github.com/google/uuid"
)

// Session bundles a cart with its notifier and checkout coordinator.
// Cart mutations arrive from HTTP handlers, so Do serializes them the
// way a UI event loop would.
type Session struct {
	ID       string
	Cart     *cart.Cart
	Notifier *notify.Notifier
	Checkout *checkout.Coordinator
	LastSeen time.Time

	mu sync.Mutex
}

// Do runs fn while holding the session lock. All cart reads and writes
// must go through here.
func (s *Session) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastSeen = time.Now()
	fn()
}

// Manager is the registry of live sessions.
type Manager struct {
	store      checkout.OrderStore
	resetDelay time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store checkout.OrderStore, resetDelay time.Duration) *Manager {
	return &Manager{
		store:      store,
		resetDelay: resetDelay,
		sessions:   make(map[string]*Session),
	}
}

// Get returns an existing session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Create builds a fresh session with an empty cart.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Cart:     cart.New(),
		Notifier: notify.NewNotifier(),
		LastSeen: time.Now(),
	}
	s.Checkout = checkout.NewCoordinator(m.store, s.Notifier,
		checkout.WithResetDelay(m.resetDelay),
		checkout.WithCartGuard(&s.mu),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// Sweep drops sessions idle longer than maxIdle and reports how many
// were removed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
