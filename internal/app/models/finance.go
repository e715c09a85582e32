package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment amounts are carried in cents to avoid floating point drift.
type Payment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	StudentID   uuid.UUID `json:"student_id" db:"student_id"`
	StudentName string    `json:"student_name" db:"student_name"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	Currency    string    `json:"currency" db:"currency"`
	Method      string    `json:"method" db:"method"`
	Status      string    `json:"status" db:"status"`
	Reference   *string   `json:"reference,omitempty" db:"reference"`
	PaidAt      time.Time `json:"paid_at" db:"paid_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Refund reverses all or part of a payment.
type Refund struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PaymentID   uuid.UUID `json:"payment_id" db:"payment_id"`
	StudentName string    `json:"student_name" db:"student_name"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	Reason      *string   `json:"reason,omitempty" db:"reason"`
	Status      string    `json:"status" db:"status"`
	RequestedAt time.Time `json:"requested_at" db:"requested_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Scholarship is a named award granted to a student.
type Scholarship struct {
	ID          uuid.UUID `json:"id" db:"id"`
	StudentID   uuid.UUID `json:"student_id" db:"student_id"`
	StudentName string    `json:"student_name" db:"student_name"`
	Name        string    `json:"name" db:"name"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	Status      string    `json:"status" db:"status"`
	AwardedAt   time.Time `json:"awarded_at" db:"awarded_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TuitionFee is the fee charged per department, year and semester.
type TuitionFee struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Department  string    `json:"department" db:"department"`
	Year        int       `json:"year" db:"year"`
	Semester    string    `json:"semester" db:"semester"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Payment statuses used across the finance pages.
const (
	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
)
