// Package postgres runs the university data service in-process, backed by
// Postgres. It satisfies the same per-entity contract as the REST client, so
// the portal cannot tell the two apart.
package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/campushub/portal/internal/app/dataservice"
	"github.com/campushub/portal/internal/app/models"
)

// NewService assembles the full data service over one database handle.
func NewService(db DB) *dataservice.Service {
	return &dataservice.Service{
		Students:      studentsTable(db),
		Lecturers:     lecturersTable(db),
		Courses:       coursesTable(db),
		Registrations: registrationsTable(db),
		Exams:         examsTable(db),
		Attendance:    attendanceTable(db),
		Materials:     materialsTable(db),
		Announcements: announcementsTable(db),
		Payments:      paymentsTable(db),
		Refunds:       refundsTable(db),
		Scholarships:  scholarshipsTable(db),
		Tuition:       tuitionTable(db),
		Auth:          &pgAuth{db: db},
	}
}

func fillID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func fillTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func studentsTable(db DB) *table[models.Student] {
	return &table[models.Student]{
		db:      db,
		name:    "students",
		columns: []string{"id", "first_name", "last_name", "email", "department", "year", "status", "avatar_url", "enrolled_at", "created_at"},
		values: func(s models.Student) map[string]any {
			return map[string]any{
				"id": s.ID, "first_name": s.FirstName, "last_name": s.LastName,
				"email": s.Email, "department": s.Department, "year": s.Year,
				"status": s.Status, "avatar_url": s.AvatarURL,
				"enrolled_at": s.EnrolledAt, "created_at": s.CreatedAt,
			}
		},
		prepare: func(s models.Student) models.Student {
			s.ID = fillID(s.ID)
			s.EnrolledAt = fillTime(s.EnrolledAt)
			s.CreatedAt = fillTime(s.CreatedAt)
			return s
		},
	}
}

func lecturersTable(db DB) *table[models.Lecturer] {
	return &table[models.Lecturer]{
		db:      db,
		name:    "lecturers",
		columns: []string{"id", "first_name", "last_name", "email", "department", "title", "status", "hired_at", "created_at"},
		values: func(l models.Lecturer) map[string]any {
			return map[string]any{
				"id": l.ID, "first_name": l.FirstName, "last_name": l.LastName,
				"email": l.Email, "department": l.Department, "title": l.Title,
				"status": l.Status, "hired_at": l.HiredAt, "created_at": l.CreatedAt,
			}
		},
		prepare: func(l models.Lecturer) models.Lecturer {
			l.ID = fillID(l.ID)
			l.HiredAt = fillTime(l.HiredAt)
			l.CreatedAt = fillTime(l.CreatedAt)
			return l
		},
	}
}

func coursesTable(db DB) *table[models.Course] {
	return &table[models.Course]{
		db:      db,
		name:    "courses",
		columns: []string{"id", "code", "title", "department", "credits", "semester", "lecturer_id", "lecturer_name", "status", "created_at"},
		values: func(c models.Course) map[string]any {
			return map[string]any{
				"id": c.ID, "code": c.Code, "title": c.Title, "department": c.Department,
				"credits": c.Credits, "semester": c.Semester, "lecturer_id": c.LecturerID,
				"lecturer_name": c.LecturerName, "status": c.Status, "created_at": c.CreatedAt,
			}
		},
		prepare: func(c models.Course) models.Course {
			c.ID = fillID(c.ID)
			c.CreatedAt = fillTime(c.CreatedAt)
			return c
		},
	}
}

func registrationsTable(db DB) *table[models.Registration] {
	return &table[models.Registration]{
		db:      db,
		name:    "registrations",
		columns: []string{"id", "student_id", "student_name", "course_id", "course_code", "course_title", "semester", "status", "registered_at", "created_at"},
		values: func(r models.Registration) map[string]any {
			return map[string]any{
				"id": r.ID, "student_id": r.StudentID, "student_name": r.StudentName,
				"course_id": r.CourseID, "course_code": r.CourseCode, "course_title": r.CourseTitle,
				"semester": r.Semester, "status": r.Status,
				"registered_at": r.RegisteredAt, "created_at": r.CreatedAt,
			}
		},
		prepare: func(r models.Registration) models.Registration {
			r.ID = fillID(r.ID)
			r.RegisteredAt = fillTime(r.RegisteredAt)
			r.CreatedAt = fillTime(r.CreatedAt)
			return r
		},
	}
}

func examsTable(db DB) *table[models.Exam] {
	return &table[models.Exam]{
		db:      db,
		name:    "exams",
		columns: []string{"id", "course_id", "course_code", "title", "room", "starts_at", "status", "created_at"},
		values: func(e models.Exam) map[string]any {
			return map[string]any{
				"id": e.ID, "course_id": e.CourseID, "course_code": e.CourseCode,
				"title": e.Title, "room": e.Room, "starts_at": e.StartsAt,
				"status": e.Status, "created_at": e.CreatedAt,
			}
		},
		prepare: func(e models.Exam) models.Exam {
			e.ID = fillID(e.ID)
			e.CreatedAt = fillTime(e.CreatedAt)
			return e
		},
	}
}

func attendanceTable(db DB) *table[models.AttendanceRecord] {
	return &table[models.AttendanceRecord]{
		db:      db,
		name:    "attendance_records",
		columns: []string{"id", "course_id", "course_code", "student_id", "student_name", "session_date", "status", "created_at"},
		values: func(a models.AttendanceRecord) map[string]any {
			return map[string]any{
				"id": a.ID, "course_id": a.CourseID, "course_code": a.CourseCode,
				"student_id": a.StudentID, "student_name": a.StudentName,
				"session_date": a.SessionDate, "status": a.Status, "created_at": a.CreatedAt,
			}
		},
		prepare: func(a models.AttendanceRecord) models.AttendanceRecord {
			a.ID = fillID(a.ID)
			a.SessionDate = fillTime(a.SessionDate)
			a.CreatedAt = fillTime(a.CreatedAt)
			return a
		},
	}
}

func materialsTable(db DB) *table[models.Material] {
	return &table[models.Material]{
		db:      db,
		name:    "materials",
		columns: []string{"id", "course_id", "course_code", "title", "kind", "url", "uploaded_by", "uploaded_at", "created_at"},
		values: func(m models.Material) map[string]any {
			return map[string]any{
				"id": m.ID, "course_id": m.CourseID, "course_code": m.CourseCode,
				"title": m.Title, "kind": m.Kind, "url": m.URL,
				"uploaded_by": m.UploadedBy, "uploaded_at": m.UploadedAt, "created_at": m.CreatedAt,
			}
		},
		prepare: func(m models.Material) models.Material {
			m.ID = fillID(m.ID)
			m.UploadedAt = fillTime(m.UploadedAt)
			m.CreatedAt = fillTime(m.CreatedAt)
			return m
		},
	}
}

func announcementsTable(db DB) *table[models.Announcement] {
	return &table[models.Announcement]{
		db:      db,
		name:    "announcements",
		columns: []string{"id", "title", "body", "audience", "posted_by", "posted_at", "created_at"},
		values: func(a models.Announcement) map[string]any {
			return map[string]any{
				"id": a.ID, "title": a.Title, "body": a.Body, "audience": a.Audience,
				"posted_by": a.PostedBy, "posted_at": a.PostedAt, "created_at": a.CreatedAt,
			}
		},
		prepare: func(a models.Announcement) models.Announcement {
			a.ID = fillID(a.ID)
			a.PostedAt = fillTime(a.PostedAt)
			a.CreatedAt = fillTime(a.CreatedAt)
			return a
		},
	}
}

func paymentsTable(db DB) *table[models.Payment] {
	return &table[models.Payment]{
		db:      db,
		name:    "payments",
		columns: []string{"id", "student_id", "student_name", "amount_cents", "currency", "method", "status", "reference", "paid_at", "created_at"},
		values: func(p models.Payment) map[string]any {
			return map[string]any{
				"id": p.ID, "student_id": p.StudentID, "student_name": p.StudentName,
				"amount_cents": p.AmountCents, "currency": p.Currency, "method": p.Method,
				"status": p.Status, "reference": p.Reference,
				"paid_at": p.PaidAt, "created_at": p.CreatedAt,
			}
		},
		prepare: func(p models.Payment) models.Payment {
			p.ID = fillID(p.ID)
			if p.Currency == "" {
				p.Currency = "usd"
			}
			p.PaidAt = fillTime(p.PaidAt)
			p.CreatedAt = fillTime(p.CreatedAt)
			return p
		},
	}
}

func refundsTable(db DB) *table[models.Refund] {
	return &table[models.Refund]{
		db:      db,
		name:    "refunds",
		columns: []string{"id", "payment_id", "student_name", "amount_cents", "reason", "status", "requested_at", "created_at"},
		values: func(r models.Refund) map[string]any {
			return map[string]any{
				"id": r.ID, "payment_id": r.PaymentID, "student_name": r.StudentName,
				"amount_cents": r.AmountCents, "reason": r.Reason, "status": r.Status,
				"requested_at": r.RequestedAt, "created_at": r.CreatedAt,
			}
		},
		prepare: func(r models.Refund) models.Refund {
			r.ID = fillID(r.ID)
			r.RequestedAt = fillTime(r.RequestedAt)
			r.CreatedAt = fillTime(r.CreatedAt)
			return r
		},
	}
}

func scholarshipsTable(db DB) *table[models.Scholarship] {
	return &table[models.Scholarship]{
		db:      db,
		name:    "scholarships",
		columns: []string{"id", "student_id", "student_name", "name", "amount_cents", "status", "awarded_at", "created_at"},
		values: func(s models.Scholarship) map[string]any {
			return map[string]any{
				"id": s.ID, "student_id": s.StudentID, "student_name": s.StudentName,
				"name": s.Name, "amount_cents": s.AmountCents, "status": s.Status,
				"awarded_at": s.AwardedAt, "created_at": s.CreatedAt,
			}
		},
		prepare: func(s models.Scholarship) models.Scholarship {
			s.ID = fillID(s.ID)
			s.AwardedAt = fillTime(s.AwardedAt)
			s.CreatedAt = fillTime(s.CreatedAt)
			return s
		},
	}
}

func tuitionTable(db DB) *table[models.TuitionFee] {
	return &table[models.TuitionFee]{
		db:      db,
		name:    "tuition_fees",
		columns: []string{"id", "department", "year", "semester", "amount_cents", "created_at"},
		values: func(tf models.TuitionFee) map[string]any {
			return map[string]any{
				"id": tf.ID, "department": tf.Department, "year": tf.Year,
				"semester": tf.Semester, "amount_cents": tf.AmountCents, "created_at": tf.CreatedAt,
			}
		},
		prepare: func(tf models.TuitionFee) models.TuitionFee {
			tf.ID = fillID(tf.ID)
			tf.CreatedAt = fillTime(tf.CreatedAt)
			return tf
		},
	}
}
