package domain

import (
	"fmt"
	"strings"
	"time"
)

// Profile is a patient's clinical profile. The name is the natural key:
// registration fails if it is taken, and every consultation looks the
// profile up by name.
type Profile struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Age           int              `json:"age"`
	Gender        string           `json:"gender"`
	WeightKg      float64          `json:"weight_kg"`
	HeightCm      float64          `json:"height_cm"`
	ActivityLevel string           `json:"activity_level"`
	Condition     Condition        `json:"condition"`
	Metrics       ConditionMetrics `json:"metrics"`
	HealthGoal    string           `json:"health_goal"`
	PINHash       string           `json:"-"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Validate checks the profile's mandatory fields.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}
	if !p.Condition.Valid() {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidInput, p.Condition)
	}
	if p.Metrics != nil && p.Metrics.Condition() != p.Condition {
		return fmt.Errorf("%w: metrics are for %q, profile is %q",
			ErrInvalidInput, p.Metrics.Condition(), p.Condition)
	}
	return nil
}

// ClinicalContext renders the profile as the clinical summary paragraph fed
// to the language model. Pure and deterministic: the same profile always
// yields byte-identical output.
func (p *Profile) ClinicalContext() string {
	markers := "No specific metrics"
	if p.Metrics != nil {
		markers = p.Metrics.Summary()
	}

	return fmt.Sprintf(`PATIENT CONTEXT:
- Name: %s
- Demographics: %d years old, %s
- Body: %gkg, %gcm (Activity: %s)

CLINICAL PROFILE:
- Condition: %s
- Clinical Markers: %s
- Goal: %s`,
		p.Name,
		p.Age, p.Gender,
		p.WeightKg, p.HeightCm, p.ActivityLevel,
		p.Condition.DisplayName(),
		markers,
		p.HealthGoal,
	)
}
