package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven/mocks"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
)

func newTestAuthService(t *testing.T) (*mocks.MockSessionStore, driving.AuthService) {
	t.Helper()

	patientStore := mocks.NewMockPatientStore()
	sessionStore := mocks.NewMockSessionStore()
	authAdapter := mocks.NewMockAuthAdapter()

	open := testProfile()
	open.Name = "Asha"
	open.Condition = domain.ConditionGeneral
	open.Metrics = nil
	if _, err := patientStore.Create(context.Background(), open); err != nil {
		t.Fatalf("seeding patient failed: %v", err)
	}

	locked := testProfile()
	hash, _ := authAdapter.HashPIN("4821")
	locked.PINHash = hash
	if _, err := patientStore.Create(context.Background(), locked); err != nil {
		t.Fatalf("seeding patient failed: %v", err)
	}

	return sessionStore, NewAuthService(patientStore, sessionStore, authAdapter)
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{
			name:    "no PIN required",
			req:     domain.LoginRequest{Name: "Asha"},
			wantErr: nil,
		},
		{
			name:    "correct PIN",
			req:     domain.LoginRequest{Name: "Rajesh Kumar", PIN: "4821"},
			wantErr: nil,
		},
		{
			name:    "wrong PIN",
			req:     domain.LoginRequest{Name: "Rajesh Kumar", PIN: "0000"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "missing PIN for protected profile",
			req:     domain.LoginRequest{Name: "Rajesh Kumar"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unregistered patient",
			req:     domain.LoginRequest{Name: "Nobody"},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "empty name",
			req:     domain.LoginRequest{},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, svc := newTestAuthService(t)
			resp, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Token == "" || resp.RefreshToken == "" {
				t.Error("expected a token pair")
			}
			if resp.Patient == nil || resp.Patient.Name != tt.req.Name {
				t.Error("expected the patient profile in the response")
			}
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	_, svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{Name: "Asha"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	authCtx, err := svc.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authCtx.PatientName != "Asha" {
		t.Errorf("unexpected patient %q", authCtx.PatientName)
	}
	if authCtx.SessionID == "" {
		t.Error("expected a session ID")
	}

	if _, err := svc.ValidateToken(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.ValidateToken(context.Background(), ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for empty token, got %v", err)
	}
}

func TestAuthService_ValidateToken_SessionDeleted(t *testing.T) {
	sessionStore, svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{Name: "Asha"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	session, err := sessionStore.GetByToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if err := sessionStore.Delete(context.Background(), session.ID); err != nil {
		t.Fatalf("session delete failed: %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), resp.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	_, svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{Name: "Asha"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), domain.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.Token == resp.Token {
		t.Error("expected a new access token")
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("expected the refresh token to rotate")
	}

	// Old session is gone; the old token no longer validates
	if _, err := svc.ValidateToken(context.Background(), resp.Token); err == nil {
		t.Error("expected the old token to be rejected after refresh")
	}
	if _, err := svc.ValidateToken(context.Background(), refreshed.Token); err != nil {
		t.Errorf("expected the new token to validate, got %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), domain.RefreshRequest{RefreshToken: "bogus"}); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	_, svc := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{Name: "Asha"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ValidateToken(context.Background(), resp.Token); err == nil {
		t.Error("expected the token to be rejected after logout")
	}

	// Logging out with an invalid token is a no-op
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateID_Unique(t *testing.T) {
	id1 := generateID()
	id2 := generateID()
	if id1 == "" || id1 == id2 {
		t.Error("expected distinct non-empty IDs")
	}
}
