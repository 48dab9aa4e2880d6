package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExpenseStatusPaid    = "Paid"
	ExpenseStatusPending = "Pending"
)

// PaymentModes lists the accepted payment methods for both expenses and invoices.
var PaymentModes = []string{"Cash", "UPI", "Bank Transfer", "Card", "Cheque"}

// IsValidPaymentMode reports whether mode is one of the accepted payment methods.
func IsValidPaymentMode(mode string) bool {
	for _, m := range PaymentModes {
		if m == mode {
			return true
		}
	}
	return false
}

// Expense is an operational cost record. Records are immutable after
// creation; the only mutation is a hard delete.
type Expense struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Category      string    `json:"category" db:"category"`
	SubCategory   string    `json:"sub_category" db:"sub_category"`
	Description   string    `json:"description" db:"description"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentMode   string    `json:"payment_mode" db:"payment_mode"`
	Status        string    `json:"status" db:"status"`
	Vendor        *string   `json:"vendor" db:"vendor"`
	InvoiceNumber *string   `json:"invoice_number" db:"invoice_number"`
	Date          time.Time `json:"date" db:"date"`
	Remarks       *string   `json:"remarks" db:"remarks"`
	EnteredBy     string    `json:"entered_by" db:"entered_by"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
