package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/cart"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/search"
)

// ChangeListener observes cart mutations of every session.
type ChangeListener func(sessionID string, change models.CartChange)

// Session is the per-visitor state: one cart and one suggestion flow.
type Session struct {
	ID        string
	Cart      *cart.Store
	Suggester *search.Suggester

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}

type Manager struct {
	searcher search.Searcher
	opts     search.Options
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	sessions  map[string]*Session
	listeners []ChangeListener
}

func NewManager(searcher search.Searcher, opts search.Options, ttl time.Duration) *Manager {
	return &Manager{
		searcher: searcher,
		opts:     opts,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating it on first use.
func (m *Manager) Get(id string) *Session {
	now := m.now()

	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{
			ID:        id,
			Cart:      cart.NewStore(),
			Suggester: search.NewSuggester(m.searcher, m.opts),
		}
		for _, l := range m.listeners {
			m.attach(s, l)
		}
		m.sessions[id] = s
		metrics.SetActiveSessions(len(m.sessions))
	}
	m.mu.Unlock()

	s.touch(now)

	return s
}

// OnCartChange registers l on every existing and future session.
func (m *Manager) OnCartChange(l ChangeListener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, l)
	for _, s := range m.sessions {
		m.attach(s, l)
	}
}

func (m *Manager) attach(s *Session, l ChangeListener) {
	id := s.ID
	s.Cart.Subscribe(func(change models.CartChange) {
		l(id, change)
	})
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastSeen()) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}

	metrics.SetActiveSessions(len(m.sessions))

	return removed
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Session sweeper stopped")
			return
		case now := <-ticker.C:
			if removed := m.Sweep(now); removed > 0 {
				slog.Info("Expired idle sessions", slog.Int("removed", removed), slog.Int("active", m.Len()))
			}
		}
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}
