package mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// MockSettingsStore is an in-memory SettingsStore for testing
type MockSettingsStore struct {
	mu       sync.RWMutex
	settings *domain.ModelSettings
}

// NewMockSettingsStore creates a new MockSettingsStore
func NewMockSettingsStore() *MockSettingsStore {
	return &MockSettingsStore{}
}

func (m *MockSettingsStore) GetModelSettings(ctx context.Context) (*domain.ModelSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return nil, domain.ErrNotFound
	}
	s := *m.settings
	return &s, nil
}

func (m *MockSettingsStore) SaveModelSettings(ctx context.Context, settings *domain.ModelSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *settings
	m.settings = &s
	return nil
}

// MockTaskQueue is an in-memory TaskQueue for testing
type MockTaskQueue struct {
	mu      sync.Mutex
	pending []*domain.Task
	tasks   map[string]*domain.Task
}

// NewMockTaskQueue creates a new MockTaskQueue
func NewMockTaskQueue() *MockTaskQueue {
	return &MockTaskQueue{tasks: make(map[string]*domain.Task)}
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *task
	m.pending = append(m.pending, &t)
	m.tasks[t.ID] = &t
	return nil
}

func (m *MockTaskQueue) DequeueWithTimeout(ctx context.Context, timeout int) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return nil, nil
	}
	task := m.pending[0]
	m.pending = m.pending[1:]
	task.Status = domain.TaskStatusProcessing
	task.UpdatedAt = time.Now()
	t := *task
	return &t, nil
}

func (m *MockTaskQueue) Ack(ctx context.Context, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	task.Status = domain.TaskStatusCompleted
	task.UpdatedAt = time.Now()
	return nil
}

func (m *MockTaskQueue) Nack(ctx context.Context, taskID string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	task.Retries++
	task.LastError = reason
	task.UpdatedAt = time.Now()
	if task.Retries > task.MaxRetries {
		task.Status = domain.TaskStatusFailed
	} else {
		task.Status = domain.TaskStatusPending
		m.pending = append(m.pending, task)
	}
	return nil
}

func (m *MockTaskQueue) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t := *task
	return &t, nil
}

func (m *MockTaskQueue) Ping(ctx context.Context) error { return nil }
func (m *MockTaskQueue) Close() error                   { return nil }

// MockAuthAdapter fakes hashing and tokens without real crypto
type MockAuthAdapter struct {
	mu     sync.Mutex
	serial int
}

// NewMockAuthAdapter creates a new MockAuthAdapter
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{}
}

func (m *MockAuthAdapter) HashPIN(pin string) (string, error) {
	return "hashed:" + pin, nil
}

func (m *MockAuthAdapter) VerifyPIN(pin, hash string) bool {
	return hash == "hashed:"+pin
}

func (m *MockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	m.mu.Lock()
	m.serial++
	serial := m.serial
	m.mu.Unlock()
	return fmt.Sprintf("token|%s|%s|%d|%d", claims.PatientName, claims.SessionID, claims.ExpiresAt, serial), nil
}

func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 5 || parts[0] != "token" {
		return nil, domain.ErrTokenInvalid
	}
	expiresAt, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if time.Now().Unix() > expiresAt {
		return nil, domain.ErrTokenExpired
	}
	return &domain.TokenClaims{
		PatientName: parts[1],
		SessionID:   parts[2],
		ExpiresAt:   expiresAt,
	}, nil
}
