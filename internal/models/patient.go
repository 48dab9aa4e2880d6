package models

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Age        int       `json:"age" db:"age"`
	Gender     string    `json:"gender" db:"gender"`
	Phone      string    `json:"phone" db:"phone"`
	Address    *string   `json:"address" db:"address"`
	ReferredBy *string   `json:"referred_by" db:"referred_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
