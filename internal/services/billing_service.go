package services

import (
	"context"
	"errors"
	"log"
	"time"

	"labdesk/internal/common"
	"labdesk/internal/models"
	"labdesk/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const maxInvoiceAmount = 10000000.00

// sequence contention is retried internally before surfacing ConcurrencyError
const invoiceCreateAttempts = 3

// InvoiceTotals is the authoritative breakdown for an invoice.
type InvoiceTotals struct {
	Subtotal    float64 `json:"subtotal"`
	FinalAmount float64 `json:"final_amount"`
	Balance     float64 `json:"balance"`
}

// ComputeInvoiceTotals derives the financial breakdown from the snapshot
// prices. Pure and deterministic. Discount is clamped to [0, subtotal] so
// finalAmount can never go negative; balance is clamped at zero so an
// overshooting payment never produces a negative balance.
func ComputeInvoiceTotals(testPrices []float64, discount, paidAmount float64) InvoiceTotals {
	var subtotal float64
	for _, price := range testPrices {
		subtotal += price
	}

	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	finalAmount := subtotal - discount

	balance := finalAmount - paidAmount
	if balance < 0 {
		balance = 0
	}

	return InvoiceTotals{Subtotal: subtotal, FinalAmount: finalAmount, Balance: balance}
}

// CreateInvoiceInput carries the caller's billing selections.
type CreateInvoiceInput struct {
	PatientID   uuid.UUID
	TestIDs     []uuid.UUID
	Discount    float64
	PaidAmount  float64
	PaymentMode string
	CreatedBy   string
}

type BillingServiceInterface interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error)
	GetInvoiceByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	ListInvoices(ctx context.Context, limit, offset int) ([]*models.Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type billingService struct {
	invoiceRepo repositories.InvoiceRepository
	patientRepo repositories.PatientRepository
	testRepo    repositories.TestRepository
}

// NewBillingService creates a new billing service
func NewBillingService(invoiceRepo repositories.InvoiceRepository, patientRepo repositories.PatientRepository, testRepo repositories.TestRepository) BillingServiceInterface {
	return &billingService{
		invoiceRepo: invoiceRepo,
		patientRepo: patientRepo,
		testRepo:    testRepo,
	}
}

// CreateInvoice validates the selection, snapshots catalog prices into line
// items, computes the totals, and persists everything atomically with a
// freshly allocated sequential invoice number.
func (s *billingService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	if len(input.TestIDs) == 0 {
		return nil, common.NewValidationError("test_ids", "at least one test is required")
	}
	if !models.IsValidPaymentMode(input.PaymentMode) {
		return nil, common.NewValidationError("payment_mode", "must be one of Cash, UPI, Bank Transfer, Card, Cheque")
	}
	if err := common.ValidateAmount(input.Discount, "discount", maxInvoiceAmount); err != nil {
		return nil, err
	}
	if err := common.ValidateAmount(input.PaidAmount, "paid_amount", maxInvoiceAmount); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.NewValidationError("patient_id", "does not reference an existing patient")
		}
		return nil, err
	}

	invoiceID := uuid.New()
	items := make([]models.InvoiceItem, 0, len(input.TestIDs))
	prices := make([]float64, 0, len(input.TestIDs))
	for i, testID := range input.TestIDs {
		test, err := s.testRepo.GetByID(ctx, testID)
		if err != nil {
			if common.IsNotFound(err) {
				return nil, common.NewValidationError("test_ids", "does not reference an existing test")
			}
			return nil, err
		}
		items = append(items, models.InvoiceItem{
			ID:        uuid.New(),
			InvoiceID: invoiceID,
			TestID:    test.ID,
			TestName:  test.Name,
			Price:     test.Price,
			Position:  i,
		})
		prices = append(prices, test.Price)
	}

	totals := ComputeInvoiceTotals(prices, input.Discount, input.PaidAmount)
	if input.Discount > totals.Subtotal {
		return nil, common.NewValidationError("discount", "cannot exceed the invoice subtotal")
	}

	invoice := &models.Invoice{
		ID:          invoiceID,
		PatientID:   input.PatientID,
		PatientName: patient.Name,
		Items:       items,
		Subtotal:    totals.Subtotal,
		Discount:    input.Discount,
		FinalAmount: totals.FinalAmount,
		PaidAmount:  input.PaidAmount,
		Balance:     totals.Balance,
		PaymentMode: input.PaymentMode,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now(),
	}

	for attempt := 1; attempt <= invoiceCreateAttempts; attempt++ {
		err = s.invoiceRepo.Create(ctx, invoice)
		if err == nil {
			break
		}
		if !isRetryableConflict(err) {
			return nil, err
		}
		log.Printf("Invoice number allocation conflict (attempt %d/%d): %v", attempt, invoiceCreateAttempts, err)
	}
	if err != nil {
		return nil, &common.ConcurrencyError{Op: "create invoice"}
	}

	invoice.Status = models.DerivePaymentStatus(invoice.FinalAmount, invoice.PaidAmount)
	return invoice, nil
}

// isRetryableConflict reports whether err is a unique violation or a
// serialization/deadlock failure, the only failures worth another attempt.
func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "23505", "40001", "40P01":
		return true
	}
	return false
}

// GetInvoiceByID retrieves an invoice by ID
func (s *billingService) GetInvoiceByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

// ListInvoices retrieves invoices with pagination, newest first
func (s *billingService) ListInvoices(ctx context.Context, limit, offset int) ([]*models.Invoice, error) {
	return s.invoiceRepo.List(ctx, limit, offset)
}

// DeleteInvoice hard-deletes an invoice. No cascading effect on patient or
// catalog records.
func (s *billingService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}
