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

type InvoiceRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    InvoiceRepository
	context context.Context
}

func (suite *InvoiceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewInvoiceRepo(mock)
	suite.context = context.Background()
}

func (suite *InvoiceRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestInvoiceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceRepoTestSuite))
}

func (suite *InvoiceRepoTestSuite) TestCreate_AllocatesSequentialNumber() {
	invoiceID := uuid.New()
	itemID := uuid.New()
	testID := uuid.New()
	invoice := &models.Invoice{
		ID:          invoiceID,
		PatientID:   uuid.New(),
		Subtotal:    350,
		Discount:    0,
		FinalAmount: 350,
		PaidAmount:  350,
		Balance:     0,
		PaymentMode: "Cash",
		CreatedBy:   "reception",
		CreatedAt:   time.Now(),
		Items: []models.InvoiceItem{
			{ID: itemID, InvoiceID: invoiceID, TestID: testID, TestName: "CBC", Price: 350, Position: 0},
		},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO sequences`).
		WithArgs("invoice").
		WillReturnRows(pgxmock.NewRows([]string{"last_number"}).AddRow(int64(42)))
	suite.mock.ExpectExec(`INSERT INTO invoices`).
		WithArgs(invoice.ID, "INV-000042", invoice.PatientID, invoice.Subtotal, invoice.Discount, invoice.FinalAmount, invoice.PaidAmount, invoice.Balance, invoice.PaymentMode, invoice.CreatedBy, invoice.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO invoice_items`).
		WithArgs(itemID, invoiceID, testID, "CBC", 350.0, 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.Create(suite.context, invoice)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "INV-000042", invoice.InvoiceNumber)
}

func (suite *InvoiceRepoTestSuite) TestGetByID_DerivesStatusOnRead() {
	id := uuid.New()
	patientID := uuid.New()
	now := time.Now()

	suite.mock.ExpectQuery(`FROM invoices i`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "invoice_number", "patient_id", "name", "subtotal", "discount", "final_amount", "paid_amount", "balance", "payment_mode", "created_by", "created_at"}).
			AddRow(id, "INV-000007", patientID, "Asha Verma", 1000.0, 100.0, 900.0, 400.0, 500.0, "Cash", "reception", now))
	suite.mock.ExpectQuery(`FROM invoice_items`).
		WithArgs([]uuid.UUID{id}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "invoice_id", "test_id", "test_name", "price", "position"}).
			AddRow(uuid.New(), id, uuid.New(), "CBC", 350.0, 0))

	invoice, err := suite.repo.GetByID(suite.context, id)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusPartial, invoice.Status)
	assert.Len(suite.T(), invoice.Items, 1)
}

func (suite *InvoiceRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mock.ExpectQuery(`FROM invoices i`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := suite.repo.GetByID(suite.context, id)
	assert.True(suite.T(), common.IsNotFound(err))
}

func (suite *InvoiceRepoTestSuite) TestDelete_MissingRowIsNotFound() {
	id := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`DELETE FROM invoice_items`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(`DELETE FROM invoices`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectRollback()

	err := suite.repo.Delete(suite.context, id)
	assert.True(suite.T(), common.IsNotFound(err))
}
