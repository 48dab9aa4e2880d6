package repositories

import (
	"context"
	"errors"

	"labdesk/internal/common"
	"labdesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	List(ctx context.Context, limit, offset int) ([]*models.Patient, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientRepo struct {
	db DB
}

func NewPatientRepo(db DB) PatientRepository {
	return &patientRepo{db: db}
}

func (r *patientRepo) Create(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (id, name, age, gender, phone, address, referred_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, patient.ID, patient.Name, patient.Age, patient.Gender, patient.Phone, patient.Address, patient.ReferredBy)
	if err != nil {
		return common.NewPersistenceError("create patient", err)
	}
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	patient := &models.Patient{}
	query := `
		SELECT id, name, age, gender, phone, address, referred_by, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&patient.ID, &patient.Name, &patient.Age, &patient.Gender, &patient.Phone, &patient.Address, &patient.ReferredBy, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("patient")
		}
		return nil, common.NewPersistenceError("get patient", err)
	}
	return patient, nil
}

func (r *patientRepo) List(ctx context.Context, limit, offset int) ([]*models.Patient, error) {
	query := `
		SELECT id, name, age, gender, phone, address, referred_by, created_at, updated_at
		FROM patients
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, common.NewPersistenceError("list patients", err)
	}
	defer rows.Close()

	return scanPatients(rows)
}

func (r *patientRepo) Search(ctx context.Context, search string, limit, offset int) ([]*models.Patient, error) {
	query := `
		SELECT id, name, age, gender, phone, address, referred_by, created_at, updated_at
		FROM patients
		WHERE name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, common.NewPersistenceError("search patients", err)
	}
	defer rows.Close()

	return scanPatients(rows)
}

func (r *patientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return common.NewPersistenceError("delete patient", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("patient")
	}
	return nil
}

func scanPatients(rows pgx.Rows) ([]*models.Patient, error) {
	var patients []*models.Patient
	for rows.Next() {
		patient := &models.Patient{}
		if err := rows.Scan(&patient.ID, &patient.Name, &patient.Age, &patient.Gender, &patient.Phone, &patient.Address, &patient.ReferredBy, &patient.CreatedAt, &patient.UpdatedAt); err != nil {
			return nil, common.NewPersistenceError("scan patient", err)
		}
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("scan patients", err)
	}
	return patients, nil
}
