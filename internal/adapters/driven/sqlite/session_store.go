package sqlite

import (
	"context"
	"database/sql"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore implements driven.SessionStore using embedded sqlite.
// Expired sessions are filtered on read; Save opportunistically purges
// them since sqlite has no TTL.
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save stores a session
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP`)

	query := `
		INSERT INTO sessions (id, patient_name, token, refresh_token, expires_at, created_at, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			user_agent = excluded.user_agent,
			ip_address = excluded.ip_address
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.PatientName,
		session.Token,
		session.RefreshToken,
		session.ExpiresAt,
		session.CreatedAt,
		session.UserAgent,
		session.IPAddress,
	)
	return err
}

// Get retrieves a session by ID
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.getWhere(ctx, "id = ?", id)
}

// GetByToken retrieves a session by access token
func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	return s.getWhere(ctx, "token = ?", token)
}

// GetByRefreshToken retrieves a session by refresh token
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	return s.getWhere(ctx, "refresh_token = ?", refreshToken)
}

// Delete removes a session by ID
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByPatient removes all sessions for a patient
func (s *SessionStore) DeleteByPatient(ctx context.Context, patientName string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE patient_name = ?`, patientName)
	return err
}

func (s *SessionStore) getWhere(ctx context.Context, where string, arg any) (*domain.Session, error) {
	query := `
		SELECT id, patient_name, token, refresh_token, expires_at, created_at, user_agent, ip_address
		FROM sessions
		WHERE ` + where

	var session domain.Session
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&session.ID,
		&session.PatientName,
		&session.Token,
		&session.RefreshToken,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.UserAgent,
		&session.IPAddress,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if session.Expired() {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}
