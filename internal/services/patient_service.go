package services

import (
	"context"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/repositories"

	"github.com/google/uuid"
)

type PatientServiceInterface interface {
	RegisterPatient(ctx context.Context, patient *models.Patient) error
	GetPatientByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	ListPatients(ctx context.Context, limit, offset int) ([]*models.Patient, error)
	SearchPatients(ctx context.Context, query string, limit, offset int) ([]*models.Patient, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
}

type patientService struct {
	patientRepo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repositories.PatientRepository) PatientServiceInterface {
	return &patientService{patientRepo: patientRepo}
}

func (s *patientService) RegisterPatient(ctx context.Context, patient *models.Patient) error {
	if err := common.ValidateRequiredString(patient.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(patient.Phone, "phone"); err != nil {
		return err
	}
	if patient.Age < 0 || patient.Age > 150 {
		return common.NewValidationError("age", "must be between 0 and 150")
	}

	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	return s.patientRepo.Create(ctx, patient)
}

func (s *patientService) GetPatientByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	return s.patientRepo.GetByID(ctx, id)
}

func (s *patientService) ListPatients(ctx context.Context, limit, offset int) ([]*models.Patient, error) {
	return s.patientRepo.List(ctx, limit, offset)
}

func (s *patientService) SearchPatients(ctx context.Context, query string, limit, offset int) ([]*models.Patient, error) {
	return s.patientRepo.Search(ctx, query, limit, offset)
}

func (s *patientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patientRepo.Delete(ctx, id)
}
