package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// MockPatientStore is an in-memory PatientStore for testing
type MockPatientStore struct {
	mu       sync.RWMutex
	nextID   int64
	profiles map[string]*domain.Profile

	// PingErr, when set, is returned from Ping
	PingErr error
}

// NewMockPatientStore creates a new MockPatientStore
func NewMockPatientStore() *MockPatientStore {
	return &MockPatientStore{
		nextID:   1,
		profiles: make(map[string]*domain.Profile),
	}
}

func (m *MockPatientStore) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[profile.Name]; ok {
		return 0, domain.ErrAlreadyExists
	}
	p := *profile
	p.ID = m.nextID
	m.nextID++
	m.profiles[p.Name] = &p
	return p.ID, nil
}

func (m *MockPatientStore) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := *profile
	return &p, nil
}

func (m *MockPatientStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[name]; !ok {
		return domain.ErrNotFound
	}
	delete(m.profiles, name)
	return nil
}

func (m *MockPatientStore) List(ctx context.Context) ([]*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Profile, 0, len(m.profiles))
	for _, profile := range m.profiles {
		p := *profile
		result = append(result, &p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockPatientStore) Ping(ctx context.Context) error {
	return m.PingErr
}
