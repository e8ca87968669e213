package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven/mocks"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
)

func newTestPatientService() (*mocks.MockPatientStore, *mocks.MockSessionStore, *patientService) {
	patientStore := mocks.NewMockPatientStore()
	sessionStore := mocks.NewMockSessionStore()
	authAdapter := mocks.NewMockAuthAdapter()
	svc := NewPatientService(patientStore, sessionStore, authAdapter).(*patientService)
	return patientStore, sessionStore, svc
}

func TestPatientService_Register(t *testing.T) {
	tests := []struct {
		name    string
		req     driving.RegisterPatientRequest
		wantErr error
	}{
		{
			name: "valid diabetes patient",
			req: driving.RegisterPatientRequest{
				Name:      "Rajesh Kumar",
				Age:       52,
				Gender:    "Male",
				WeightKg:  78.5,
				HeightCm:  172,
				Condition: domain.ConditionDiabetes,
				Metrics:   map[string]any{"hba1c": 8.2, "medication": "Insulin"},
			},
			wantErr: nil,
		},
		{
			name: "missing name",
			req: driving.RegisterPatientRequest{
				Age:       40,
				Condition: domain.ConditionGeneral,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "unknown condition",
			req: driving.RegisterPatientRequest{
				Name:      "Someone",
				Condition: domain.Condition("gout"),
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "negative age",
			req: driving.RegisterPatientRequest{
				Name:      "Someone Else",
				Age:       -3,
				Condition: domain.ConditionGeneral,
			},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, svc := newTestPatientService()
			profile, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.ID == 0 {
				t.Error("expected profile to get an ID")
			}
			if profile.Condition != tt.req.Condition {
				t.Errorf("expected condition %q, got %q", tt.req.Condition, profile.Condition)
			}
		})
	}
}

func TestPatientService_Register_MetricsDecoded(t *testing.T) {
	_, _, svc := newTestPatientService()

	profile, err := svc.Register(context.Background(), driving.RegisterPatientRequest{
		Name:      "Rajesh Kumar",
		Age:       52,
		Condition: domain.ConditionDiabetes,
		Metrics:   map[string]any{"hba1c": 8.2, "medication": "Insulin"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	metrics, ok := profile.Metrics.(domain.DiabetesMetrics)
	if !ok {
		t.Fatalf("expected domain.DiabetesMetrics, got %T", profile.Metrics)
	}
	if metrics.HbA1c != 8.2 {
		t.Errorf("expected HbA1c 8.2, got %v", metrics.HbA1c)
	}
	if metrics.Medication != "Insulin" {
		t.Errorf("expected medication Insulin, got %q", metrics.Medication)
	}
}

func TestPatientService_Register_DefaultsToGeneral(t *testing.T) {
	_, _, svc := newTestPatientService()

	profile, err := svc.Register(context.Background(), driving.RegisterPatientRequest{Name: "Asha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Condition != domain.ConditionGeneral {
		t.Errorf("expected general condition, got %q", profile.Condition)
	}
}

func TestPatientService_Register_Duplicate(t *testing.T) {
	_, _, svc := newTestPatientService()

	req := driving.RegisterPatientRequest{Name: "Rajesh Kumar", Condition: domain.ConditionGeneral}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPatientService_Register_PINHashed(t *testing.T) {
	_, _, svc := newTestPatientService()

	profile, err := svc.Register(context.Background(), driving.RegisterPatientRequest{
		Name: "Rajesh Kumar",
		PIN:  "4821",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.PINHash == "" {
		t.Fatal("expected PIN hash to be set")
	}
	if profile.PINHash == "4821" {
		t.Error("PIN must not be stored in plaintext")
	}
}

func TestPatientService_Get(t *testing.T) {
	_, _, svc := newTestPatientService()

	if _, err := svc.Get(context.Background(), "Nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.Register(context.Background(), driving.RegisterPatientRequest{Name: "Asha"}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	profile, err := svc.Get(context.Background(), "Asha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Asha" {
		t.Errorf("expected Asha, got %q", profile.Name)
	}
}

func TestPatientService_Delete_RemovesSessions(t *testing.T) {
	_, sessionStore, svc := newTestPatientService()

	if _, err := svc.Register(context.Background(), driving.RegisterPatientRequest{Name: "Asha"}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	session := &domain.Session{ID: "s1", PatientName: "Asha", Token: "t1", RefreshToken: "r1"}
	if err := sessionStore.Save(context.Background(), session); err != nil {
		t.Fatalf("session save failed: %v", err)
	}

	if err := svc.Delete(context.Background(), "Asha"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "Asha"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected patient gone, got %v", err)
	}
	if err := sessionStore.Delete(context.Background(), "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("expected sessions to be removed with the patient")
	}
}

func TestPatientService_List_NewestFirst(t *testing.T) {
	_, _, svc := newTestPatientService()

	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := svc.Register(context.Background(), driving.RegisterPatientRequest{Name: name}); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
	}

	profiles, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(profiles))
	}
	if profiles[0].Name != "Third" {
		t.Errorf("expected newest first, got %q", profiles[0].Name)
	}
}
