// Package dataservice is the portal's boundary to the university data
// service. Every call is context-aware and returns exactly one of a value or
// an error; record shapes are owned by the service, not by the portal.
//
// Two implementations exist: a REST client for a remote service
// (dataservice/rest) and a Postgres-backed store for running the service
// in-process (dataservice/postgres).
package dataservice

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/portal/internal/app/models"
)

type callerKey struct{}

// Caller identifies the authenticated principal on whose behalf a data
// service call is made. The service authorizes every call independently of
// the portal's route guard.
type Caller struct {
	UserID string
	Role   models.Role
}

// WithCaller attaches the caller to the context for downstream backends.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller attached by WithCaller, if any.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(Caller)
	return caller, ok
}

// Collection is the per-entity contract of the data service.
type Collection[R any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, rec R) (R, error)
	Update(ctx context.Context, id uuid.UUID, rec R) (R, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Authenticator verifies platform credentials at login.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
}

// Service bundles every collection the portals consume.
type Service struct {
	Students      Collection[models.Student]
	Lecturers     Collection[models.Lecturer]
	Courses       Collection[models.Course]
	Registrations Collection[models.Registration]
	Exams         Collection[models.Exam]
	Attendance    Collection[models.AttendanceRecord]
	Materials     Collection[models.Material]
	Announcements Collection[models.Announcement]
	Payments      Collection[models.Payment]
	Refunds       Collection[models.Refund]
	Scholarships  Collection[models.Scholarship]
	Tuition       Collection[models.TuitionFee]

	Auth Authenticator
}
