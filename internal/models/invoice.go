package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusPartial = "Partial"
	InvoiceStatusPending = "Pending"
)

// InvoiceItem is a price snapshot taken from the test catalog at invoice
// creation. Later catalog price changes never alter historical invoices.
type InvoiceItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	InvoiceID uuid.UUID `json:"invoice_id" db:"invoice_id"`
	TestID    uuid.UUID `json:"test_id" db:"test_id"`
	TestName  string    `json:"test_name" db:"test_name"`
	Price     float64   `json:"price" db:"price"`
	Position  int       `json:"position" db:"position"`
}

// Invoice is a billing record for one or more tests for one patient.
// Financial fields are immutable after creation; the only mutation is a
// hard delete. Status is derived from FinalAmount and PaidAmount on read
// and is never stored, so it cannot drift.
type Invoice struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	InvoiceNumber string        `json:"invoice_number" db:"invoice_number"`
	PatientID     uuid.UUID     `json:"patient_id" db:"patient_id"`
	PatientName   string        `json:"patient_name" db:"patient_name"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal" db:"subtotal"`
	Discount      float64       `json:"discount" db:"discount"`
	FinalAmount   float64       `json:"final_amount" db:"final_amount"`
	PaidAmount    float64       `json:"paid_amount" db:"paid_amount"`
	Balance       float64       `json:"balance" db:"balance"`
	PaymentMode   string        `json:"payment_mode" db:"payment_mode"`
	Status        string        `json:"status"`
	CreatedBy     string        `json:"created_by" db:"created_by"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// DerivePaymentStatus is a pure, total function of the two financial fields.
// paid == 0 -> Pending; 0 < paid < finalAmount -> Partial; paid >= finalAmount
// -> Paid. Overpayment still reports Paid. A zero-amount invoice is Paid.
func DerivePaymentStatus(finalAmount, paidAmount float64) string {
	if paidAmount >= finalAmount {
		return InvoiceStatusPaid
	}
	if paidAmount > 0 {
		return InvoiceStatusPartial
	}
	return InvoiceStatusPending
}
