package models

import (
	"time"

	"github.com/google/uuid"
)

// LabTest is a catalog entry. Its price is authoritative only at the moment
// an invoice is created; invoices carry their own snapshot of it.
type LabTest struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Category        string    `json:"category" db:"category"`
	Price           float64   `json:"price" db:"price"`
	SampleType      string    `json:"sample_type" db:"sample_type"`
	TurnaroundHours int       `json:"turnaround_hours" db:"turnaround_hours"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
