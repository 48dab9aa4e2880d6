package services

import (
	"context"
	"log"
	"time"

	"labdesk/internal/caching"
	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/repositories"

	"github.com/google/uuid"
)

const testCatalogCacheTTL = 10 * time.Minute

type TestServiceInterface interface {
	CreateTest(ctx context.Context, test *models.LabTest) error
	GetTestByID(ctx context.Context, id uuid.UUID) (*models.LabTest, error)
	ListTests(ctx context.Context, limit, offset int) ([]*models.LabTest, error)
	UpdateTest(ctx context.Context, test *models.LabTest) error
	DeleteTest(ctx context.Context, id uuid.UUID) error
}

type testService struct {
	testRepo repositories.TestRepository
	cacheSvc caching.CacheService
}

// NewTestService creates a new test catalog service
func NewTestService(testRepo repositories.TestRepository, cacheSvc caching.CacheService) TestServiceInterface {
	return &testService{testRepo: testRepo, cacheSvc: cacheSvc}
}

func (s *testService) validate(test *models.LabTest) error {
	if err := common.ValidateRequiredString(test.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(test.Category, "category"); err != nil {
		return err
	}
	if err := common.ValidateAmount(test.Price, "price", maxInvoiceAmount); err != nil {
		return err
	}
	return nil
}

func (s *testService) CreateTest(ctx context.Context, test *models.LabTest) error {
	if err := s.validate(test); err != nil {
		return err
	}

	if test.ID == uuid.Nil {
		test.ID = uuid.New()
	}
	test.CreatedAt = time.Now()
	test.UpdatedAt = test.CreatedAt

	return s.testRepo.Create(ctx, test)
}

func (s *testService) GetTestByID(ctx context.Context, id uuid.UUID) (*models.LabTest, error) {
	if cached, err := s.cacheSvc.GetLabTest(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	test, err := s.testRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetLabTest(ctx, test, testCatalogCacheTTL); err != nil {
		log.Printf("Failed to cache lab test %s: %v", test.ID, err)
	}
	return test, nil
}

func (s *testService) ListTests(ctx context.Context, limit, offset int) ([]*models.LabTest, error) {
	return s.testRepo.List(ctx, limit, offset)
}

func (s *testService) UpdateTest(ctx context.Context, test *models.LabTest) error {
	if err := s.validate(test); err != nil {
		return err
	}
	test.UpdatedAt = time.Now()

	if err := s.testRepo.Update(ctx, test); err != nil {
		return err
	}
	if err := s.cacheSvc.DeleteLabTest(ctx, test.ID); err != nil {
		log.Printf("Failed to invalidate lab test cache %s: %v", test.ID, err)
	}
	return nil
}

func (s *testService) DeleteTest(ctx context.Context, id uuid.UUID) error {
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cacheSvc.DeleteLabTest(ctx, id); err != nil {
		log.Printf("Failed to invalidate lab test cache %s: %v", id, err)
	}
	return nil
}
