package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Condition is a primary medical condition a patient profile is keyed on.
// Guideline documents carry the same tags, which is what makes
// condition-filtered retrieval possible.
type Condition string

const (
	ConditionGeneral      Condition = "general"
	ConditionDiabetes     Condition = "diabetes"
	ConditionHypertension Condition = "hypertension"
	ConditionAnemia       Condition = "anemia"
	ConditionPCOS         Condition = "pcos"
	ConditionObesity      Condition = "obesity"
)

// AllConditions lists every valid condition tag.
func AllConditions() []Condition {
	return []Condition{
		ConditionGeneral,
		ConditionDiabetes,
		ConditionHypertension,
		ConditionAnemia,
		ConditionPCOS,
		ConditionObesity,
	}
}

// Valid reports whether c is a known condition tag.
func (c Condition) Valid() bool {
	for _, known := range AllConditions() {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName returns the patient-facing name for the condition.
func (c Condition) DisplayName() string {
	switch c {
	case ConditionDiabetes:
		return "Type 2 Diabetes"
	case ConditionHypertension:
		return "Hypertension"
	case ConditionAnemia:
		return "Anaemia"
	case ConditionPCOS:
		return "PCOS"
	case ConditionObesity:
		return "Obesity"
	default:
		return "General Health"
	}
}

// Classifier maps a guideline document (by filename) to a condition tag.
// The mapping gates retrieval filtering, so it is injectable and
// independently testable rather than buried in the indexer.
type Classifier func(filename string) Condition

// DefaultClassifier tags documents by filename keywords.
// Unmatched documents fall back to the general category.
func DefaultClassifier(filename string) Condition {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "diabetes"):
		return ConditionDiabetes
	case strings.Contains(name, "hypertension"), strings.Contains(name, "blood_pressure"):
		return ConditionHypertension
	case strings.Contains(name, "anemia"), strings.Contains(name, "anaemia"), strings.Contains(name, "iron"):
		return ConditionAnemia
	case strings.Contains(name, "pcos"):
		return ConditionPCOS
	case strings.Contains(name, "obesity"), strings.Contains(name, "esi"):
		return ConditionObesity
	default:
		return ConditionGeneral
	}
}

// ConditionMetrics is the condition-specific clinical marker set of a
// profile. One variant exists per condition, so a diabetes profile always
// carries an HbA1c and a hypertension profile always carries a blood
// pressure reading.
type ConditionMetrics interface {
	// Condition returns the variant's condition tag.
	Condition() Condition

	// Summary renders the markers as a single legible line
	// (e.g. "HbA1c: 8.2% | Medication: Insulin").
	Summary() string
}

// DiabetesMetrics holds markers for type 2 diabetes profiles.
type DiabetesMetrics struct {
	HbA1c      float64 `json:"hba1c"`
	Medication string  `json:"medication"`
}

func (m DiabetesMetrics) Condition() Condition { return ConditionDiabetes }

func (m DiabetesMetrics) Summary() string {
	return fmt.Sprintf("HbA1c: %.1f%% | Medication: %s", m.HbA1c, m.Medication)
}

// HypertensionMetrics holds markers for hypertension profiles.
type HypertensionMetrics struct {
	Systolic  int `json:"bp_systolic"`
	Diastolic int `json:"bp_diastolic"`
}

func (m HypertensionMetrics) Condition() Condition { return ConditionHypertension }

func (m HypertensionMetrics) Summary() string {
	return fmt.Sprintf("BP: %d/%d mmHg", m.Systolic, m.Diastolic)
}

// AnemiaMetrics holds markers for anaemia profiles.
type AnemiaMetrics struct {
	Hemoglobin float64  `json:"hemoglobin"`
	Symptoms   []string `json:"symptoms"`
}

func (m AnemiaMetrics) Condition() Condition { return ConditionAnemia }

func (m AnemiaMetrics) Summary() string {
	return fmt.Sprintf("Hemoglobin: %.1f g/dL | Symptoms: %s", m.Hemoglobin, strings.Join(m.Symptoms, ", "))
}

// PCOSMetrics holds markers for PCOS profiles.
type PCOSMetrics struct {
	Cycle      string `json:"periods"`
	WeightGain bool   `json:"weight_gain"`
}

func (m PCOSMetrics) Condition() Condition { return ConditionPCOS }

func (m PCOSMetrics) Summary() string {
	gain := "No"
	if m.WeightGain {
		gain = "Yes"
	}
	return fmt.Sprintf("Cycle: %s | Weight Gain: %s", m.Cycle, gain)
}

// ObesityMetrics holds markers for obesity profiles.
type ObesityMetrics struct {
	BMI          float64 `json:"bmi"`
	TargetWeight float64 `json:"target_weight"`
}

func (m ObesityMetrics) Condition() Condition { return ConditionObesity }

func (m ObesityMetrics) Summary() string {
	return fmt.Sprintf("BMI: %.1f | Target: %.1fkg", m.BMI, m.TargetWeight)
}

// GeneralMetrics holds free-form markers for profiles without a specific
// condition.
type GeneralMetrics struct {
	Markers map[string]string `json:"markers,omitempty"`
}

func (m GeneralMetrics) Condition() Condition { return ConditionGeneral }

func (m GeneralMetrics) Summary() string {
	if len(m.Markers) == 0 {
		return "No specific metrics"
	}
	keys := make([]string, 0, len(m.Markers))
	for k := range m.Markers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m.Markers[k]))
	}
	return strings.Join(parts, ", ")
}

// UnmarshalMetrics decodes a metrics JSON blob into the variant matching
// the given condition. An empty blob yields the variant's zero value.
func UnmarshalMetrics(condition Condition, data []byte) (ConditionMetrics, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}

	switch condition {
	case ConditionDiabetes:
		var m DiabetesMetrics
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse diabetes metrics: %w", err)
		}
		return m, nil
	case ConditionHypertension:
		var m HypertensionMetrics
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse hypertension metrics: %w", err)
		}
		return m, nil
	case ConditionAnemia:
		var m AnemiaMetrics
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse anaemia metrics: %w", err)
		}
		return m, nil
	case ConditionPCOS:
		var m PCOSMetrics
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse PCOS metrics: %w", err)
		}
		return m, nil
	case ConditionObesity:
		var m ObesityMetrics
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse obesity metrics: %w", err)
		}
		return m, nil
	case ConditionGeneral:
		var m GeneralMetrics
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse general metrics: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unknown condition %q", ErrInvalidInput, condition)
	}
}

// MarshalMetrics encodes a metrics variant to its JSON blob form.
func MarshalMetrics(metrics ConditionMetrics) ([]byte, error) {
	if metrics == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(metrics)
}
