// Package repositories implements the data access layer (repository pattern) for
// the registration backend. Handlers never issue SQL directly — all database
// access goes through this layer, which keeps query logic testable in isolation.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/event-registration/registration-backend/internal/db/models"
)

// ErrDuplicateContact is returned by Insert when the phone number already has a
// registration. Detection relies on the database unique constraint rather than a
// pre-check so the conflict decision is atomic with the write.
var ErrDuplicateContact = errors.New("phone number already registered")

// phoneUniqueConstraint is the name of the unique constraint on the
// phone_number column (see migration 000001).
const phoneUniqueConstraint = "registrations_phone_number_key"

// RegistrationRepository handles registration database operations
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// registrationColumns is the canonical column order used by every SELECT in
// this repository, matching scanRegistration.
const registrationColumns = `id, registration_number, full_name, phone_number, email,
		age_range, gender, area_residence, medical_condition, student_or_worker,
		occupation, will_sleep, days_attending, emergency_contact_name,
		emergency_contact_phone, dietary_restrictions, sms_sent, created_at`

// Insert persists a new registration, assigning its ID and creation timestamp.
// A duplicate phone number yields ErrDuplicateContact; any other failure is an
// infrastructure error and is returned wrapped.
func (r *RegistrationRepository) Insert(ctx context.Context, reg *models.Registration) error {
	reg.ID = uuid.New().String()
	reg.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO registrations (
			id, registration_number, full_name, phone_number, email,
			age_range, gender, area_residence, medical_condition, student_or_worker,
			occupation, will_sleep, days_attending, emergency_contact_name,
			emergency_contact_phone, dietary_restrictions, sms_sent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(ctx, query,
		reg.ID,
		reg.RegistrationNumber,
		reg.FullName,
		reg.PhoneNumber,
		reg.Email,
		reg.AgeRange,
		reg.Gender,
		reg.AreaResidence,
		reg.MedicalCondition,
		reg.StudentOrWorker,
		reg.Occupation,
		reg.WillSleep,
		pq.Array(reg.DaysAttending),
		reg.EmergencyContactName,
		reg.EmergencyContactPhone,
		reg.DietaryRestrictions,
		reg.SMSSent,
		reg.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == phoneUniqueConstraint {
			return ErrDuplicateContact
		}
		return fmt.Errorf("failed to insert registration: %w", err)
	}

	return nil
}

// MarkNotified idempotently sets sms_sent = true for the given registration.
// Updating an already-notified or missing row is not an error.
func (r *RegistrationRepository) MarkNotified(ctx context.Context, id string) error {
	query := `UPDATE registrations SET sms_sent = TRUE WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark registration notified: %w", err)
	}
	return nil
}

// GetByID retrieves a registration by its ID. Returns nil when not found.
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	reg, err := scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// ListAll returns every registration, newest first. Pagination, search, and
// filtering happen in the presentation layer over the full result set, which is
// acceptable at single-event volumes.
func (r *RegistrationRepository) ListAll(ctx context.Context) ([]models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read registrations: %w", err)
	}

	return regs, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRegistration(s scanner) (*models.Registration, error) {
	reg := &models.Registration{}
	var days pq.StringArray
	err := s.Scan(
		&reg.ID,
		&reg.RegistrationNumber,
		&reg.FullName,
		&reg.PhoneNumber,
		&reg.Email,
		&reg.AgeRange,
		&reg.Gender,
		&reg.AreaResidence,
		&reg.MedicalCondition,
		&reg.StudentOrWorker,
		&reg.Occupation,
		&reg.WillSleep,
		&days,
		&reg.EmergencyContactName,
		&reg.EmergencyContactPhone,
		&reg.DietaryRestrictions,
		&reg.SMSSent,
		&reg.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan registration: %w", err)
	}
	reg.DaysAttending = []string(days)
	return reg, nil
}
