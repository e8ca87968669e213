package driving

import (
	"context"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

// RegisterPatientRequest carries a new patient registration
// @Description Patient registration payload
type RegisterPatientRequest struct {
	Name          string           `json:"name" example:"Rajesh Kumar"`
	Age           int              `json:"age" example:"52"`
	Gender        string           `json:"gender" example:"Male"`
	WeightKg      float64          `json:"weight_kg" example:"78.5"`
	HeightCm      float64          `json:"height_cm" example:"172"`
	ActivityLevel string           `json:"activity_level" example:"Sedentary"`
	Condition     domain.Condition `json:"condition" example:"diabetes"`
	Metrics       map[string]any   `json:"metrics"`
	HealthGoal    string           `json:"health_goal" example:"Blood Sugar Control & Insulin Sensitivity"`
	PIN           string           `json:"pin,omitempty" example:"4821"`
}

// PatientService manages patient profiles
type PatientService interface {
	// Register creates a new patient profile.
	// Returns domain.ErrAlreadyExists when the name is taken; the existing
	// record is unaffected.
	Register(ctx context.Context, req RegisterPatientRequest) (*domain.Profile, error)

	// Get retrieves a profile by name.
	// Returns domain.ErrNotFound when the patient is not registered.
	Get(ctx context.Context, name string) (*domain.Profile, error)

	// Delete removes a profile by name.
	// Returns domain.ErrNotFound when the patient is not registered.
	Delete(ctx context.Context, name string) error

	// List retrieves all profiles, newest first
	List(ctx context.Context) ([]*domain.Profile, error)
}
