package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PatientStore = (*PatientStore)(nil)

// PatientStore implements driven.PatientStore using embedded sqlite.
// Condition metrics are stored as a JSON blob and decoded back into their
// typed variant on read.
type PatientStore struct {
	db *DB
}

// NewPatientStore creates a new PatientStore
func NewPatientStore(db *DB) *PatientStore {
	return &PatientStore{db: db}
}

// Create inserts a new profile and returns its generated ID
func (s *PatientStore) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	metrics, err := domain.MarshalMetrics(profile.Metrics)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO patients (name, age, gender, weight_kg, height_cm, activity_level, condition, specific_metrics, health_goal, pin_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		profile.Name,
		profile.Age,
		profile.Gender,
		profile.WeightKg,
		profile.HeightCm,
		profile.ActivityLevel,
		string(profile.Condition),
		string(metrics),
		profile.HealthGoal,
		profile.PINHash,
		profile.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrAlreadyExists
		}
		return 0, err
	}

	return result.LastInsertId()
}

// GetByName retrieves a profile by name
func (s *PatientStore) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	query := `
		SELECT id, name, age, gender, weight_kg, height_cm, activity_level, condition, specific_metrics, health_goal, pin_hash, created_at
		FROM patients
		WHERE name = ?
	`
	return s.scanProfile(s.db.QueryRowContext(ctx, query, name))
}

// Delete removes a profile by name
func (s *PatientStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE name = ?`, name)
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

// List retrieves all profiles, newest first
func (s *PatientStore) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `
		SELECT id, name, age, gender, weight_kg, height_cm, activity_level, condition, specific_metrics, health_goal, pin_hash, created_at
		FROM patients
		ORDER BY id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := s.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// Ping checks if the store is reachable
func (s *PatientStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func (s *PatientStore) scanProfile(row scanner) (*domain.Profile, error) {
	var profile domain.Profile
	var condition, metricsBlob string

	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Age,
		&profile.Gender,
		&profile.WeightKg,
		&profile.HeightCm,
		&profile.ActivityLevel,
		&condition,
		&metricsBlob,
		&profile.HealthGoal,
		&profile.PINHash,
		&profile.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	profile.Condition = domain.Condition(condition)
	profile.Metrics, err = domain.UnmarshalMetrics(profile.Condition, []byte(metricsBlob))
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
