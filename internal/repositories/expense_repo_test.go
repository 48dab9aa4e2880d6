package repositories

import (
	"context"
	"testing"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ExpenseRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ExpenseRepository
	context context.Context
}

func (suite *ExpenseRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewExpenseRepo(mock)
	suite.context = context.Background()
}

func (suite *ExpenseRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestExpenseRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseRepoTestSuite))
}

func (suite *ExpenseRepoTestSuite) TestCreate_Success() {
	expense := &models.Expense{
		ID:          uuid.New(),
		Category:    "Reagents",
		SubCategory: "Chemistry",
		Description: "Glucose reagent kit",
		Amount:      1250,
		PaymentMode: "Cash",
		Status:      models.ExpenseStatusPaid,
		Date:        time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local),
		EnteredBy:   "admin",
	}

	suite.mock.ExpectExec(`INSERT INTO expenses`).
		WithArgs(expense.ID, expense.Category, expense.SubCategory, expense.Description, expense.Amount, expense.PaymentMode, expense.Status, expense.Vendor, expense.InvoiceNumber, expense.Date, expense.Remarks, expense.EnteredBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, expense)
	assert.NoError(suite.T(), err)
}

func (suite *ExpenseRepoTestSuite) TestList_OrderedByDateThenInsertion() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "category", "sub_category", "description", "amount", "payment_mode", "status", "vendor", "invoice_number", "date", "remarks", "entered_by", "created_at"}).
		AddRow(uuid.New(), "Reagents", "Chemistry", "Kit A", 100.0, "Cash", "Paid", (*string)(nil), (*string)(nil), now, (*string)(nil), "admin", now).
		AddRow(uuid.New(), "Utilities", "Power", "Electricity bill", 2500.0, "Bank Transfer", "Pending", (*string)(nil), (*string)(nil), now.AddDate(0, 0, -1), (*string)(nil), "admin", now)

	suite.mock.ExpectQuery(`ORDER BY date DESC, created_at ASC`).WillReturnRows(rows)

	expenses, err := suite.repo.List(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), expenses, 2)
	assert.Equal(suite.T(), "Reagents", expenses[0].Category)
}

func (suite *ExpenseRepoTestSuite) TestDelete_Success() {
	id := uuid.New()
	suite.mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, id)
	assert.NoError(suite.T(), err)
}

func (suite *ExpenseRepoTestSuite) TestDelete_MissingRowIsNotFound() {
	id := uuid.New()
	suite.mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, id)
	assert.True(suite.T(), common.IsNotFound(err))
}
