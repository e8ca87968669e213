package services

import (
	"strings"
	"testing"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

func testProfile() *domain.Profile {
	return &domain.Profile{
		ID:            1,
		Name:          "Rajesh Kumar",
		Age:           52,
		Gender:        "Male",
		WeightKg:      78.5,
		HeightCm:      172,
		ActivityLevel: "Sedentary",
		Condition:     domain.ConditionDiabetes,
		Metrics:       domain.DiabetesMetrics{HbA1c: 8.2, Medication: "Insulin"},
		HealthGoal:    "Blood Sugar Control",
	}
}

func TestBuildPrompt_TurnFormat(t *testing.T) {
	prompt := buildPrompt(testProfile(), "Can I eat mangoes?", "some guideline text")

	if !strings.HasPrefix(prompt, "<start_of_turn>user\n") {
		t.Error("prompt must open the user turn")
	}
	if !strings.HasSuffix(prompt, "<start_of_turn>model") {
		t.Error("prompt must end ready for the model turn")
	}
	if !strings.Contains(prompt, "<end_of_turn>") {
		t.Error("prompt must close the user turn")
	}
	if strings.Index(prompt, "<end_of_turn>") < strings.Index(prompt, `PATIENT REQUEST: "Can I eat mangoes?"`) {
		t.Error("question must come before the turn close")
	}
}

func TestBuildPrompt_ContainsClinicalContext(t *testing.T) {
	prompt := buildPrompt(testProfile(), "Can I eat mangoes?", "guidelines here")

	for _, want := range []string{
		"Rajesh Kumar",
		"Condition: Type 2 Diabetes (CRITICAL)",
		"HbA1c: 8.2% | Medication: Insulin",
		"Goal: Blood Sugar Control",
		"RELEVANT CLINICAL GUIDELINES:\nguidelines here",
		"RESPONSE STRATEGY",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_NoGuidelines(t *testing.T) {
	prompt := buildPrompt(testProfile(), "What should I eat?", "")

	if !strings.Contains(prompt, "Use standard medical knowledge.") {
		t.Error("expected standard-knowledge instruction when no evidence retrieved")
	}
	if strings.Contains(prompt, "RELEVANT CLINICAL GUIDELINES") {
		t.Error("must not announce guidelines that were not retrieved")
	}
}

func TestBuildPrompt_NilMetrics(t *testing.T) {
	profile := testProfile()
	profile.Condition = domain.ConditionGeneral
	profile.Metrics = nil

	prompt := buildPrompt(profile, "What should I eat?", "")
	if !strings.Contains(prompt, "Markers: None") {
		t.Error("expected Markers: None for a profile without metrics")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := buildPrompt(testProfile(), "Can I eat mangoes?", "evidence")
	b := buildPrompt(testProfile(), "Can I eat mangoes?", "evidence")
	if a != b {
		t.Error("prompt assembly must be deterministic")
	}
}

func TestFormatGuidelines(t *testing.T) {
	chunks := []*domain.RetrievedChunk{
		{
			Chunk: &domain.GuidelineChunk{
				Source:   "icmr_diabetes_2023.pdf",
				Category: domain.ConditionDiabetes,
				Content:  "Prefer whole grains.",
			},
			Score: 0.92,
		},
		{
			Chunk: &domain.GuidelineChunk{
				Source:   "dietary_guidelines.pdf",
				Category: domain.ConditionGeneral,
				Content:  "A balanced plate matters.",
			},
			Score: 0.85,
		},
	}

	got := formatGuidelines(chunks)
	want := "[Source: icmr_diabetes_2023.pdf | Tag: Type 2 Diabetes]\nPrefer whole grains.\n\n" +
		"[Source: dietary_guidelines.pdf | Tag: General Health]\nA balanced plate matters."
	if got != want {
		t.Errorf("formatGuidelines mismatch:\ngot:  %q\nwant: %q", got, want)
	}

	if formatGuidelines(nil) != "" {
		t.Error("no chunks must format to an empty string")
	}
}
