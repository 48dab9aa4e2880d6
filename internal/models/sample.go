package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SampleStatusCollected  = "Collected"
	SampleStatusProcessing = "Processing"
	SampleStatusCompleted  = "Completed"
)

// Sample tracks a collected specimen and the tests it covers.
type Sample struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SampleCode  string    `json:"sample_code" db:"sample_code"`
	PatientID   uuid.UUID `json:"patient_id" db:"patient_id"`
	PatientName string    `json:"patient_name" db:"patient_name"`
	TestNames   []string  `json:"test_names" db:"test_names"`
	Status      string    `json:"status" db:"status"`
	CollectedAt time.Time `json:"collected_at" db:"collected_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// IsValidSampleStatus reports whether status is a known sample state.
func IsValidSampleStatus(status string) bool {
	switch status {
	case SampleStatusCollected, SampleStatusProcessing, SampleStatusCompleted:
		return true
	}
	return false
}
