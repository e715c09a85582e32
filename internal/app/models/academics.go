package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is the raw course record as returned by the data service.
type Course struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Code         string     `json:"code" db:"code"`
	Title        string     `json:"title" db:"title"`
	Department   string     `json:"department" db:"department"`
	Credits      int        `json:"credits" db:"credits"`
	Semester     string     `json:"semester" db:"semester"`
	LecturerID   *uuid.UUID `json:"lecturer_id,omitempty" db:"lecturer_id"`
	LecturerName *string    `json:"lecturer_name,omitempty" db:"lecturer_name"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// Registration links a student to a course for one semester.
type Registration struct {
	ID           uuid.UUID `json:"id" db:"id"`
	StudentID    uuid.UUID `json:"student_id" db:"student_id"`
	StudentName  string    `json:"student_name" db:"student_name"`
	CourseID     uuid.UUID `json:"course_id" db:"course_id"`
	CourseCode   string    `json:"course_code" db:"course_code"`
	CourseTitle  *string   `json:"course_title,omitempty" db:"course_title"`
	Semester     string    `json:"semester" db:"semester"`
	Status       string    `json:"status" db:"status"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Exam is a scheduled examination for a course.
type Exam struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CourseID   uuid.UUID `json:"course_id" db:"course_id"`
	CourseCode string    `json:"course_code" db:"course_code"`
	Title      string    `json:"title" db:"title"`
	Room       *string   `json:"room,omitempty" db:"room"`
	StartsAt   time.Time `json:"starts_at" db:"starts_at"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// AttendanceRecord is one student's attendance mark for one course session.
type AttendanceRecord struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CourseID    uuid.UUID `json:"course_id" db:"course_id"`
	CourseCode  string    `json:"course_code" db:"course_code"`
	StudentID   uuid.UUID `json:"student_id" db:"student_id"`
	StudentName string    `json:"student_name" db:"student_name"`
	SessionDate time.Time `json:"session_date" db:"session_date"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Material is a piece of course content shared with students.
type Material struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CourseID   uuid.UUID `json:"course_id" db:"course_id"`
	CourseCode string    `json:"course_code" db:"course_code"`
	Title      string    `json:"title" db:"title"`
	Kind       string    `json:"kind" db:"kind"`
	URL        string    `json:"url" db:"url"`
	UploadedBy *string   `json:"uploaded_by,omitempty" db:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Announcement is a platform-wide or audience-scoped notice.
type Announcement struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Audience  string    `json:"audience" db:"audience"`
	PostedBy  *string   `json:"posted_by,omitempty" db:"posted_by"`
	PostedAt  time.Time `json:"posted_at" db:"posted_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
