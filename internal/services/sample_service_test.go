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

type MockSampleRepository struct {
	mock.Mock
}

func (m *MockSampleRepository) Create(ctx context.Context, sample *models.Sample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockSampleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sample, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sample), args.Error(1)
}

func (m *MockSampleRepository) List(ctx context.Context, limit, offset int) ([]*models.Sample, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Sample), args.Error(1)
}

func (m *MockSampleRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Sample, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).([]*models.Sample), args.Error(1)
}

func (m *MockSampleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSampleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SampleServiceTestSuite defines the test suite
type SampleServiceTestSuite struct {
	suite.Suite
	mockSampleRepo  *MockSampleRepository
	mockPatientRepo *MockPatientRepository
	service         SampleServiceInterface
	patientID       uuid.UUID
}

func (suite *SampleServiceTestSuite) SetupTest() {
	suite.mockSampleRepo = &MockSampleRepository{}
	suite.mockPatientRepo = &MockPatientRepository{}
	suite.service = NewSampleService(suite.mockSampleRepo, suite.mockPatientRepo)
	suite.patientID = uuid.New()
}

func (suite *SampleServiceTestSuite) TearDownTest() {
	suite.mockSampleRepo.AssertExpectations(suite.T())
	suite.mockPatientRepo.AssertExpectations(suite.T())
}

func TestSampleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SampleServiceTestSuite))
}

func (suite *SampleServiceTestSuite) TestCollectSample_Success() {
	suite.mockPatientRepo.On("GetByID", mock.Anything, suite.patientID).Return(&models.Patient{
		ID:   suite.patientID,
		Name: "Asha Verma",
	}, nil).Once()
	suite.mockSampleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Sample")).Return(nil).Once()

	collectedAt := time.Date(2026, 8, 31, 9, 15, 0, 0, time.Local)
	sample, err := suite.service.CollectSample(context.Background(), suite.patientID, []string{"CBC", "Lipid Profile"}, collectedAt)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.SampleStatusCollected, sample.Status)
	assert.Equal(suite.T(), "Asha Verma", sample.PatientName)
	assert.Equal(suite.T(), collectedAt, sample.CollectedAt)
	assert.Len(suite.T(), sample.TestNames, 2)
}

func (suite *SampleServiceTestSuite) TestCollectSample_DefaultsCollectedAtToNow() {
	suite.mockPatientRepo.On("GetByID", mock.Anything, suite.patientID).Return(&models.Patient{
		ID:   suite.patientID,
		Name: "Asha Verma",
	}, nil).Once()
	suite.mockSampleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Sample")).Return(nil).Once()

	sample, err := suite.service.CollectSample(context.Background(), suite.patientID, []string{"CBC"}, time.Time{})

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), sample.CollectedAt.IsZero())
}

func (suite *SampleServiceTestSuite) TestCollectSample_NoTests() {
	_, err := suite.service.CollectSample(context.Background(), suite.patientID, nil, time.Now())

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *SampleServiceTestSuite) TestCollectSample_UnknownPatient() {
	suite.mockPatientRepo.On("GetByID", mock.Anything, suite.patientID).Return(nil, common.NewNotFoundError("patient")).Once()

	_, err := suite.service.CollectSample(context.Background(), suite.patientID, []string{"CBC"}, time.Now())

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *SampleServiceTestSuite) TestUpdateSampleStatus_InvalidStatus() {
	err := suite.service.UpdateSampleStatus(context.Background(), uuid.New(), "Lost")

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *SampleServiceTestSuite) TestUpdateSampleStatus_Success() {
	id := uuid.New()
	suite.mockSampleRepo.On("UpdateStatus", mock.Anything, id, models.SampleStatusProcessing).Return(nil).Once()

	err := suite.service.UpdateSampleStatus(context.Background(), id, models.SampleStatusProcessing)

	assert.NoError(suite.T(), err)
}
