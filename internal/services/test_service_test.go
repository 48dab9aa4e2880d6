package services

import (
	"context"
	"testing"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetLabTest(ctx context.Context, testID uuid.UUID) (*models.LabTest, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LabTest), args.Error(1)
}

func (m *MockCacheService) SetLabTest(ctx context.Context, test *models.LabTest, ttl time.Duration) error {
	args := m.Called(ctx, test, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteLabTest(ctx context.Context, testID uuid.UUID) error {
	args := m.Called(ctx, testID)
	return args.Error(0)
}

func (m *MockCacheService) GetAnalyticsSnapshot(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheService) SetAnalyticsSnapshot(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, data, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteAnalyticsSnapshot(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// TestCatalogServiceTestSuite defines the test suite
type TestCatalogServiceTestSuite struct {
	suite.Suite
	mockTestRepo *MockTestRepository
	mockCache    *MockCacheService
	service      TestServiceInterface
}

func (suite *TestCatalogServiceTestSuite) SetupTest() {
	suite.mockTestRepo = &MockTestRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewTestService(suite.mockTestRepo, suite.mockCache)
}

func (suite *TestCatalogServiceTestSuite) TearDownTest() {
	suite.mockTestRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestTestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TestCatalogServiceTestSuite))
}

func (suite *TestCatalogServiceTestSuite) TestCreateTest_Success() {
	test := &models.LabTest{Name: "CBC", Category: "Hematology", Price: 350, SampleType: "Blood"}
	suite.mockTestRepo.On("Create", mock.Anything, test).Return(nil).Once()

	err := suite.service.CreateTest(context.Background(), test)

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, test.ID)
}

func (suite *TestCatalogServiceTestSuite) TestCreateTest_InvalidPrice() {
	test := &models.LabTest{Name: "CBC", Category: "Hematology", Price: -5}

	err := suite.service.CreateTest(context.Background(), test)

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *TestCatalogServiceTestSuite) TestGetTestByID_CacheHit() {
	testID := uuid.New()
	cached := &models.LabTest{ID: testID, Name: "CBC", Price: 350}
	suite.mockCache.On("GetLabTest", mock.Anything, testID).Return(cached, nil).Once()

	test, err := suite.service.GetTestByID(context.Background(), testID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, test)
}

func (suite *TestCatalogServiceTestSuite) TestGetTestByID_CacheMissFetchesAndCaches() {
	testID := uuid.New()
	stored := &models.LabTest{ID: testID, Name: "CBC", Price: 350}
	suite.mockCache.On("GetLabTest", mock.Anything, testID).Return(nil, nil).Once()
	suite.mockTestRepo.On("GetByID", mock.Anything, testID).Return(stored, nil).Once()
	suite.mockCache.On("SetLabTest", mock.Anything, stored, testCatalogCacheTTL).Return(nil).Once()

	test, err := suite.service.GetTestByID(context.Background(), testID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, test)
}

func (suite *TestCatalogServiceTestSuite) TestUpdateTest_InvalidatesCache() {
	test := &models.LabTest{ID: uuid.New(), Name: "CBC", Category: "Hematology", Price: 400}
	suite.mockTestRepo.On("Update", mock.Anything, test).Return(nil).Once()
	suite.mockCache.On("DeleteLabTest", mock.Anything, test.ID).Return(nil).Once()

	err := suite.service.UpdateTest(context.Background(), test)

	assert.NoError(suite.T(), err)
}

func (suite *TestCatalogServiceTestSuite) TestDeleteTest_InvalidatesCache() {
	testID := uuid.New()
	suite.mockTestRepo.On("Delete", mock.Anything, testID).Return(nil).Once()
	suite.mockCache.On("DeleteLabTest", mock.Anything, testID).Return(nil).Once()

	err := suite.service.DeleteTest(context.Background(), testID)

	assert.NoError(suite.T(), err)
}
