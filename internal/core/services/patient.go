package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
)

// Ensure patientService implements PatientService
var _ driving.PatientService = (*patientService)(nil)

// patientService implements the PatientService interface
type patientService struct {
	patientStore driven.PatientStore
	sessionStore driven.SessionStore
	authAdapter  driven.AuthAdapter
}

// NewPatientService creates a new PatientService
func NewPatientService(
	patientStore driven.PatientStore,
	sessionStore driven.SessionStore,
	authAdapter driven.AuthAdapter,
) driving.PatientService {
	return &patientService{
		patientStore: patientStore,
		sessionStore: sessionStore,
		authAdapter:  authAdapter,
	}
}

// Register creates a new patient profile
func (s *patientService) Register(ctx context.Context, req driving.RegisterPatientRequest) (*domain.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	condition := req.Condition
	if condition == "" {
		condition = domain.ConditionGeneral
	}

	metrics, err := decodeMetrics(condition, req.Metrics)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		Name:          name,
		Age:           req.Age,
		Gender:        req.Gender,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		ActivityLevel: req.ActivityLevel,
		Condition:     condition,
		Metrics:       metrics,
		HealthGoal:    req.HealthGoal,
		CreatedAt:     time.Now(),
	}

	if req.PIN != "" {
		hash, err := s.authAdapter.HashPIN(req.PIN)
		if err != nil {
			return nil, fmt.Errorf("failed to hash PIN: %w", err)
		}
		profile.PINHash = hash
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	id, err := s.patientStore.Create(ctx, profile)
	if err != nil {
		return nil, err
	}
	profile.ID = id

	return profile, nil
}

// Get retrieves a profile by name
func (s *patientService) Get(ctx context.Context, name string) (*domain.Profile, error) {
	return s.patientStore.GetByName(ctx, strings.TrimSpace(name))
}

// Delete removes a profile and invalidates its sessions
func (s *patientService) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := s.patientStore.Delete(ctx, name); err != nil {
		return err
	}
	_ = s.sessionStore.DeleteByPatient(ctx, name)
	return nil
}

// List retrieves all profiles
func (s *patientService) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.patientStore.List(ctx)
}

// decodeMetrics converts the free-form request metrics into the variant
// for the given condition. A nil map yields the variant's zero value.
func decodeMetrics(condition domain.Condition, raw map[string]any) (domain.ConditionMetrics, error) {
	blob, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: bad metrics payload", domain.ErrInvalidInput)
	}
	metrics, err := domain.UnmarshalMetrics(condition, blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return metrics, nil
}
