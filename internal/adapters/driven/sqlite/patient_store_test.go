package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test db failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPatient() *domain.Profile {
	return &domain.Profile{
		Name:          "Rajesh Kumar",
		Age:           52,
		Gender:        "Male",
		WeightKg:      78.5,
		HeightCm:      172,
		ActivityLevel: "Sedentary",
		Condition:     domain.ConditionDiabetes,
		Metrics:       domain.DiabetesMetrics{HbA1c: 8.2, Medication: "Insulin"},
		HealthGoal:    "Blood Sugar Control",
		PINHash:       "$2a$10$fakehash",
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestPatientStore_RoundTrip(t *testing.T) {
	store := NewPatientStore(openTestDB(t))

	id, err := store.Create(context.Background(), testPatient())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a generated ID")
	}

	got, err := store.GetByName(context.Background(), "Rajesh Kumar")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	want := testPatient()
	if got.ID != id {
		t.Errorf("expected ID %d, got %d", id, got.ID)
	}
	if got.Name != want.Name || got.Age != want.Age || got.Gender != want.Gender {
		t.Error("identity fields do not round-trip")
	}
	if got.WeightKg != want.WeightKg || got.HeightCm != want.HeightCm || got.ActivityLevel != want.ActivityLevel {
		t.Error("body fields do not round-trip")
	}
	if got.Condition != domain.ConditionDiabetes {
		t.Errorf("unexpected condition %q", got.Condition)
	}
	if got.HealthGoal != want.HealthGoal || got.PINHash != want.PINHash {
		t.Error("goal or PIN hash does not round-trip")
	}

	metrics, ok := got.Metrics.(domain.DiabetesMetrics)
	if !ok {
		t.Fatalf("expected typed diabetes metrics, got %T", got.Metrics)
	}
	if metrics.HbA1c != 8.2 || metrics.Medication != "Insulin" {
		t.Errorf("metrics do not round-trip: %+v", metrics)
	}
}

func TestPatientStore_DuplicateName(t *testing.T) {
	store := NewPatientStore(openTestDB(t))

	if _, err := store.Create(context.Background(), testPatient()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := testPatient()
	second.Age = 30
	if _, err := store.Create(context.Background(), second); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// The first record is unaffected
	got, err := store.GetByName(context.Background(), "Rajesh Kumar")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Age != 52 {
		t.Errorf("first record was modified, age now %d", got.Age)
	}
}

func TestPatientStore_GetMissing(t *testing.T) {
	store := NewPatientStore(openTestDB(t))

	if _, err := store.GetByName(context.Background(), "Nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPatientStore_Delete(t *testing.T) {
	store := NewPatientStore(openTestDB(t))

	if _, err := store.Create(context.Background(), testPatient()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Delete(context.Background(), "Rajesh Kumar"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetByName(context.Background(), "Rajesh Kumar"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(context.Background(), "Rajesh Kumar"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestPatientStore_List(t *testing.T) {
	store := NewPatientStore(openTestDB(t))

	for _, name := range []string{"First", "Second", "Third"} {
		p := testPatient()
		p.Name = name
		p.Condition = domain.ConditionGeneral
		p.Metrics = domain.GeneralMetrics{}
		if _, err := store.Create(context.Background(), p); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	profiles, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(profiles))
	}
	if profiles[0].Name != "Third" || profiles[2].Name != "First" {
		t.Error("expected newest-first ordering")
	}
}

func TestPatientStore_MetricsVariants(t *testing.T) {
	store := NewPatientStore(openTestDB(t))

	tests := []struct {
		name      string
		condition domain.Condition
		metrics   domain.ConditionMetrics
	}{
		{"Hyper Patient", domain.ConditionHypertension, domain.HypertensionMetrics{Systolic: 140, Diastolic: 90}},
		{"Anemia Patient", domain.ConditionAnemia, domain.AnemiaMetrics{Hemoglobin: 9.5, Symptoms: []string{"fatigue"}}},
		{"PCOS Patient", domain.ConditionPCOS, domain.PCOSMetrics{Cycle: "Irregular", WeightGain: true}},
		{"Obesity Patient", domain.ConditionObesity, domain.ObesityMetrics{BMI: 32.4, TargetWeight: 75}},
		{"General Patient", domain.ConditionGeneral, domain.GeneralMetrics{Markers: map[string]string{"note": "checkup"}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.condition), func(t *testing.T) {
			p := testPatient()
			p.Name = tt.name
			p.Condition = tt.condition
			p.Metrics = tt.metrics

			if _, err := store.Create(context.Background(), p); err != nil {
				t.Fatalf("create failed: %v", err)
			}
			got, err := store.GetByName(context.Background(), tt.name)
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if got.Metrics.Condition() != tt.condition {
				t.Errorf("metrics decoded as %q, expected %q", got.Metrics.Condition(), tt.condition)
			}
			if got.Metrics.Summary() != tt.metrics.Summary() {
				t.Errorf("summary mismatch: got %q want %q", got.Metrics.Summary(), tt.metrics.Summary())
			}
		})
	}
}
