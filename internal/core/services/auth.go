package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	patientStore driven.PatientStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
	tokenTTL     time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	patientStore driven.PatientStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
) driving.AuthService {
	return &authService{
		patientStore: patientStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
		tokenTTL:     24 * time.Hour,
	}
}

// Login authenticates a patient by name and optional PIN
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	patient, err := s.patientStore.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	// A PIN is only enforced when the profile registered one
	if patient.PINHash != "" && !s.authAdapter.VerifyPIN(req.PIN, patient.PINHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, patient)
}

// ValidateToken validates an access token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	// Verify session exists
	session, err := s.sessionStore.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	if session.Expired() {
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		PatientName: claims.PatientName,
		SessionID:   claims.SessionID,
	}, nil
}

// RefreshToken generates a new token from a valid refresh token
func (s *authService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if req.RefreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionStore.GetByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if session.Expired() {
		return nil, domain.ErrTokenExpired
	}

	patient, err := s.patientStore.GetByName(ctx, session.PatientName)
	if err != nil {
		return nil, err
	}

	// Rotate: old session out, fresh session in
	_ = s.sessionStore.Delete(ctx, session.ID)

	return s.openSession(ctx, patient)
}

// Logout invalidates a session
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil // Already invalid, nothing to do
	}

	return s.sessionStore.Delete(ctx, claims.SessionID)
}

// openSession mints a token pair for the patient and persists the session
func (s *authService) openSession(ctx context.Context, patient *domain.Profile) (*domain.LoginResponse, error) {
	sessionID := generateID()
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := &domain.TokenClaims{
		PatientName: patient.Name,
		SessionID:   sessionID,
		IssuedAt:    now.Unix(),
		ExpiresAt:   expiresAt.Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:           sessionID,
		PatientName:  patient.Name,
		Token:        token,
		RefreshToken: generateRefreshToken(),
		ExpiresAt:    expiresAt,
		CreatedAt:    now,
	}

	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    expiresAt,
		Patient:      patient,
	}, nil
}

// Helper functions

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func generateRefreshToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
