package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/logger"
)

// Session is one logged-in user and the state owned by that login.
type Session[T any] struct {
	Token     string
	User      domain.User
	CreatedAt time.Time
	State     T
}

// SessionManager issues opaque tokens and keeps per-session state in memory.
type SessionManager[T any] struct {
	mu       sync.RWMutex
	sessions map[string]*Session[T]
	newState func(domain.User) T
	release  func(T)
	now      func() time.Time
}

// NewSessionManager creates a manager. newState builds the state of a fresh session;
// release, when non-nil, is called with the state of every ended session.
func NewSessionManager[T any](newState func(domain.User) T, release func(T)) *SessionManager[T] {
	return &SessionManager[T]{
		sessions: make(map[string]*Session[T]),
		newState: newState,
		release:  release,
		now:      time.Now,
	}
}

// Create starts a session for user.
func (m *SessionManager[T]) Create(ctx context.Context, user domain.User) *Session[T] {
	s := &Session[T]{
		Token:     uuid.NewString(),
		User:      user,
		CreatedAt: m.now().UTC(),
		State:     m.newState(user),
	}

	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()

	logger.DebugLog(ctx, "session created for %s", user.Email)
	return s
}

// Get returns the session for token or domain.ErrSessionNotFound.
func (m *SessionManager[T]) Get(token string) (*Session[T], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// End removes the session and releases its state.
func (m *SessionManager[T]) End(ctx context.Context, token string) error {
	m.mu.Lock()
	s, ok := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	if m.release != nil {
		m.release(s.State)
	}
	logger.DebugLog(ctx, "session ended for %s", s.User.Email)
	return nil
}

// CloseAll ends every session. Used on shutdown.
func (m *SessionManager[T]) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session[T])
	m.mu.Unlock()

	if m.release == nil {
		return
	}
	for _, s := range sessions {
		m.release(s.State)
	}
}

// Len returns the number of live sessions.
func (m *SessionManager[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
