// Package redis provides session storage with TTL-based expiry, selected
// when REDIS_URL is configured.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*SessionStore)(nil)

const (
	sessionPrefix        = "session:"
	sessionTokenPrefix   = "session:token:"
	sessionRefreshPrefix = "session:refresh:"
	sessionPatientPrefix = "session:patient:"
)

// SessionStore implements driven.SessionStore using Redis.
// Sessions use Redis TTL for automatic expiration.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save stores a session with TTL based on ExpiresAt
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		// Session already expired, don't save
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.Pipeline()

	pipe.Set(ctx, sessionPrefix+session.ID, data, ttl)
	pipe.Set(ctx, sessionTokenPrefix+session.Token, session.ID, ttl)
	pipe.Set(ctx, sessionRefreshPrefix+session.RefreshToken, session.ID, ttl)

	// Track the patient's session IDs for bulk logout
	pipe.SAdd(ctx, sessionPatientPrefix+session.PatientName, session.ID)
	pipe.Expire(ctx, sessionPatientPrefix+session.PatientName, 30*24*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetByToken retrieves a session by access token
func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	sessionID, err := s.client.Get(ctx, sessionTokenPrefix+token).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}

	return s.Get(ctx, sessionID)
}

// GetByRefreshToken retrieves a session by refresh token
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	sessionID, err := s.client.Get(ctx, sessionRefreshPrefix+refreshToken).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by refresh token: %w", err)
	}

	return s.Get(ctx, sessionID)
}

// Delete removes a session by ID
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err == domain.ErrNotFound {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	return s.deleteSession(ctx, session)
}

// DeleteByPatient removes all sessions for a patient
func (s *SessionStore) DeleteByPatient(ctx context.Context, patientName string) error {
	sessionIDs, err := s.client.SMembers(ctx, sessionPatientPrefix+patientName).Result()
	if err != nil {
		return fmt.Errorf("failed to get patient sessions: %w", err)
	}

	for _, sessionID := range sessionIDs {
		// Some sessions may have already expired
		_ = s.Delete(ctx, sessionID)
	}

	s.client.Del(ctx, sessionPatientPrefix+patientName)
	return nil
}

// deleteSession removes a session and all its indexes
func (s *SessionStore) deleteSession(ctx context.Context, session *domain.Session) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionPrefix+session.ID)
	pipe.Del(ctx, sessionTokenPrefix+session.Token)
	pipe.Del(ctx, sessionRefreshPrefix+session.RefreshToken)
	pipe.SRem(ctx, sessionPatientPrefix+session.PatientName, session.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
