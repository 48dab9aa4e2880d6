package services

import (
	"context"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/repositories"

	"github.com/google/uuid"
)

type SampleServiceInterface interface {
	CollectSample(ctx context.Context, patientID uuid.UUID, testNames []string, collectedAt time.Time) (*models.Sample, error)
	GetSampleByID(ctx context.Context, id uuid.UUID) (*models.Sample, error)
	ListSamples(ctx context.Context, limit, offset int) ([]*models.Sample, error)
	UpdateSampleStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteSample(ctx context.Context, id uuid.UUID) error
}

type sampleService struct {
	sampleRepo  repositories.SampleRepository
	patientRepo repositories.PatientRepository
}

// NewSampleService creates a new sample tracking service
func NewSampleService(sampleRepo repositories.SampleRepository, patientRepo repositories.PatientRepository) SampleServiceInterface {
	return &sampleService{sampleRepo: sampleRepo, patientRepo: patientRepo}
}

func (s *sampleService) CollectSample(ctx context.Context, patientID uuid.UUID, testNames []string, collectedAt time.Time) (*models.Sample, error) {
	if len(testNames) == 0 {
		return nil, common.NewValidationError("test_names", "at least one test is required")
	}

	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.NewValidationError("patient_id", "does not reference an existing patient")
		}
		return nil, err
	}

	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	sample := &models.Sample{
		ID:          uuid.New(),
		PatientID:   patientID,
		PatientName: patient.Name,
		TestNames:   testNames,
		Status:      models.SampleStatusCollected,
		CollectedAt: collectedAt,
		CreatedAt:   time.Now(),
	}

	if err := s.sampleRepo.Create(ctx, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func (s *sampleService) GetSampleByID(ctx context.Context, id uuid.UUID) (*models.Sample, error) {
	return s.sampleRepo.GetByID(ctx, id)
}

func (s *sampleService) ListSamples(ctx context.Context, limit, offset int) ([]*models.Sample, error) {
	return s.sampleRepo.List(ctx, limit, offset)
}

func (s *sampleService) UpdateSampleStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !models.IsValidSampleStatus(status) {
		return common.NewValidationError("status", "must be Collected, Processing or Completed")
	}
	return s.sampleRepo.UpdateStatus(ctx, id, status)
}

func (s *sampleService) DeleteSample(ctx context.Context, id uuid.UUID) error {
	return s.sampleRepo.Delete(ctx, id)
}
