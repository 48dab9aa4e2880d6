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

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) List(ctx context.Context) ([]*models.Expense, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ExpenseServiceTestSuite defines the test suite
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	service         ExpenseServiceInterface
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = &MockExpenseRepository{}
	suite.service = NewExpenseService(suite.mockExpenseRepo)
}

func (suite *ExpenseServiceTestSuite) TearDownTest() {
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func validExpense() *models.Expense {
	return &models.Expense{
		Category:    "Reagents",
		SubCategory: "Chemistry",
		Description: "Glucose reagent kit",
		Amount:      1250,
		PaymentMode: "Cash",
		Status:      models.ExpenseStatusPaid,
		Date:        time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local),
		EnteredBy:   "admin",
	}
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	expense := validExpense()
	suite.mockExpenseRepo.On("Create", mock.Anything, expense).Return(nil).Once()

	err := suite.service.CreateExpense(context.Background(), expense)

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, expense.ID)
	assert.False(suite.T(), expense.CreatedAt.IsZero())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_MissingCategory() {
	expense := validExpense()
	expense.Category = ""

	err := suite.service.CreateExpense(context.Background(), expense)

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ZeroAmountAccepted() {
	expense := validExpense()
	expense.Amount = 0
	suite.mockExpenseRepo.On("Create", mock.Anything, expense).Return(nil).Once()

	err := suite.service.CreateExpense(context.Background(), expense)

	assert.NoError(suite.T(), err)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NegativeAmount() {
	expense := validExpense()
	expense.Amount = -10

	err := suite.service.CreateExpense(context.Background(), expense)

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_InvalidPaymentMode() {
	expense := validExpense()
	expense.PaymentMode = "IOU"

	err := suite.service.CreateExpense(context.Background(), expense)

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_InvalidStatus() {
	expense := validExpense()
	expense.Status = "Overdue"

	err := suite.service.CreateExpense(context.Background(), expense)

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_MissingDate() {
	expense := validExpense()
	expense.Date = time.Time{}

	err := suite.service.CreateExpense(context.Background(), expense)

	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_SecondDeleteNotFound() {
	id := uuid.New()
	suite.mockExpenseRepo.On("Delete", mock.Anything, id).Return(nil).Once()
	suite.mockExpenseRepo.On("Delete", mock.Anything, id).Return(common.NewNotFoundError("expense")).Once()

	assert.NoError(suite.T(), suite.service.DeleteExpense(context.Background(), id))

	err := suite.service.DeleteExpense(context.Background(), id)
	assert.True(suite.T(), common.IsNotFound(err))
}

func TestBuildExpenseDashboard(t *testing.T) {
	now := time.Date(2026, 9, 20, 14, 30, 0, 0, time.Local)
	today := time.Date(2026, 9, 20, 0, 0, 0, 0, time.Local)
	earlierThisMonth := time.Date(2026, 9, 5, 0, 0, 0, 0, time.Local)
	lastMonth := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)

	expenses := []*models.Expense{
		{Category: "Reagents", Amount: 500, Status: models.ExpenseStatusPaid, Date: today},
		{Category: "Utilities", Amount: 150, Status: models.ExpenseStatusPending, Date: earlierThisMonth},
		{Category: "Reagents", Amount: 200, Status: models.ExpenseStatusPaid, Date: lastMonth},
	}

	dashboard := BuildExpenseDashboard(expenses, now)

	assert.Equal(t, 500.0, dashboard.TodayAmount)
	assert.Equal(t, 650.0, dashboard.MonthAmount)
	assert.Equal(t, 150.0, dashboard.PendingAmount)
	assert.Equal(t, 1, dashboard.PendingCount)
	assert.Equal(t, "Reagents", dashboard.TopCategory)
	assert.Equal(t, 700.0, dashboard.TopCategoryAmount)
}

func TestBuildExpenseDashboard_TopCategoryTieBreak(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)

	expenses := []*models.Expense{
		{Category: "Utilities", Amount: 300, Status: models.ExpenseStatusPaid, Date: date},
		{Category: "Maintenance", Amount: 300, Status: models.ExpenseStatusPaid, Date: date},
	}

	dashboard := BuildExpenseDashboard(expenses, now)

	// Equal totals resolve to the alphabetically first category
	assert.Equal(t, "Maintenance", dashboard.TopCategory)
	assert.Equal(t, 300.0, dashboard.TopCategoryAmount)
}

func TestBuildExpenseDashboard_Empty(t *testing.T) {
	dashboard := BuildExpenseDashboard(nil, time.Now())

	assert.Equal(t, 0.0, dashboard.TodayAmount)
	assert.Equal(t, 0.0, dashboard.MonthAmount)
	assert.Equal(t, 0, dashboard.PendingCount)
	assert.Equal(t, "", dashboard.TopCategory)
}
