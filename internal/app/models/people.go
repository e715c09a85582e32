package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the raw student record as returned by the data service.
type Student struct {
	ID         uuid.UUID `json:"id" db:"id"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Email      string    `json:"email" db:"email"`
	Department string    `json:"department" db:"department"`
	Year       int       `json:"year" db:"year"`
	Status     string    `json:"status" db:"status"`
	AvatarURL  *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	EnrolledAt time.Time `json:"enrolled_at" db:"enrolled_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Lecturer is the raw lecturer record as returned by the data service.
type Lecturer struct {
	ID         uuid.UUID `json:"id" db:"id"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Email      string    `json:"email" db:"email"`
	Department string    `json:"department" db:"department"`
	Title      *string   `json:"title,omitempty" db:"title"`
	Status     string    `json:"status" db:"status"`
	HiredAt    time.Time `json:"hired_at" db:"hired_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Student statuses as used by the admin portal.
const (
	StudentActive    = "active"
	StudentSuspended = "suspended"
	StudentGraduated = "graduated"
)
