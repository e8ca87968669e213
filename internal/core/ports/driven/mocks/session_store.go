package mocks

import (
	"context"
	"sync"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// MockSessionStore is an in-memory SessionStore for testing
type MockSessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*domain.Session
	byToken   map[string]string
	byRefresh map[string]string
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions:  make(map[string]*domain.Session),
		byToken:   make(map[string]string),
		byRefresh: make(map[string]string),
	}
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *session
	m.sessions[s.ID] = &s
	m.byToken[s.Token] = s.ID
	m.byRefresh[s.RefreshToken] = s.ID
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok || session.Expired() {
		return nil, domain.ErrNotFound
	}
	s := *session
	return &s, nil
}

func (m *MockSessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.RLock()
	id, ok := m.byToken[token]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m.Get(ctx, id)
}

func (m *MockSessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	m.mu.RLock()
	id, ok := m.byRefresh[refreshToken]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m.Get(ctx, id)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.byToken, session.Token)
	delete(m.byRefresh, session.RefreshToken)
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionStore) DeleteByPatient(ctx context.Context, patientName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		if session.PatientName == patientName {
			delete(m.byToken, session.Token)
			delete(m.byRefresh, session.RefreshToken)
			delete(m.sessions, id)
		}
	}
	return nil
}
