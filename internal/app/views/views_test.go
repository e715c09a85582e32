package views

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/viewmodel"
)

func TestProjectStudentSubstitutesPlaceholders(t *testing.T) {
	v := ProjectStudent(models.Student{
		ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace",
	})
	assert.Equal(t, "Ada Lovelace", v.Name)
	assert.Equal(t, DefaultAvatar, v.AvatarURL)
	assert.Equal(t, PlaceholderNA, v.Year)
	assert.Equal(t, PlaceholderNA, v.EnrolledOn)
}

func TestProjectStudentYearLabel(t *testing.T) {
	v := ProjectStudent(models.Student{ID: uuid.New(), Year: 3})
	assert.Equal(t, "Year 3", v.Year)
}

func TestProjectLecturerTenure(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		hired time.Time
		want  string
	}{
		{time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), "3 years"},
		{time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "1 year"},
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "Less than a year"},
		{time.Time{}, PlaceholderNA},
	}
	for _, tc := range cases {
		v := projectLecturerAt(models.Lecturer{ID: uuid.New(), HiredAt: tc.hired}, now)
		assert.Equal(t, tc.want, v.Tenure)
	}
}

func TestProjectCourseUnassignedLecturer(t *testing.T) {
	v := ProjectCourse(models.Course{ID: uuid.New(), Code: "CS101"})
	assert.Equal(t, PlaceholderUnassigned, v.Lecturer)

	name := "Dr. Grace Hopper"
	v = ProjectCourse(models.Course{ID: uuid.New(), LecturerName: &name})
	assert.Equal(t, name, v.Lecturer)
}

func TestTitleCaseHandlesMultibyteFirstRune(t *testing.T) {
	assert.Equal(t, "Active", titleCase("active"))
	assert.Equal(t, "Éligible", titleCase("éligible"))
	assert.Equal(t, PlaceholderNA, titleCase(""))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatMoney(123450, "usd"))
	assert.Equal(t, "$0.05", FormatMoney(5, ""))
	assert.Equal(t, "-$12.00", FormatMoney(-1200, "usd"))
	assert.Equal(t, "€999.99", FormatMoney(99999, "eur"))
	assert.Equal(t, "$1,000,000.00", FormatMoney(100000000, "usd"))
}

func TestStudentCardsAggregateOverFullSet(t *testing.T) {
	raw := make([]models.Student, 0, 4)
	for i := 0; i < 3; i++ {
		raw = append(raw, models.Student{ID: uuid.New(), Department: "Computer Science", Status: models.StudentActive})
	}
	raw = append(raw, models.Student{ID: uuid.New(), Department: "History", Status: models.StudentSuspended})

	// A filtered pipeline run must not change what the cards report.
	rs := viewmodel.Apply(StudentDescriptor(), raw, viewmodel.State{
		Selected: map[string]string{"department": "History"},
	})
	assert.Len(t, rs.Items, 1)

	cards := StudentCards(rs.All)
	assert.Equal(t, "Total Students", cards[0].Label)
	assert.Equal(t, "4", cards[0].Value)
	assert.Equal(t, "3", cards[1].Value)
	assert.Equal(t, "75% of all students", cards[1].Hint)
	assert.Equal(t, "2", cards[2].Value)
}

func TestPaymentCardsCountSucceededOnly(t *testing.T) {
	all := []PaymentView{
		ProjectPayment(models.Payment{ID: uuid.New(), AmountCents: 10000, Currency: "usd", Status: models.PaymentSucceeded}),
		ProjectPayment(models.Payment{ID: uuid.New(), AmountCents: 5000, Currency: "usd", Status: models.PaymentFailed}),
	}
	cards := PaymentCards(all)
	assert.Equal(t, "2", cards[0].Value)
	assert.Equal(t, "$100.00", cards[1].Value)
	assert.Equal(t, "50%", cards[2].Value)
}

func TestAttendanceCardsPresentRate(t *testing.T) {
	all := []AttendanceView{
		ProjectAttendance(models.AttendanceRecord{ID: uuid.New(), Status: "present"}),
		ProjectAttendance(models.AttendanceRecord{ID: uuid.New(), Status: "present"}),
		ProjectAttendance(models.AttendanceRecord{ID: uuid.New(), Status: "absent"}),
	}
	cards := AttendanceCards(all)
	assert.Equal(t, "67%", cards[1].Value)
}

func TestProjectorsTotalOnZeroValues(t *testing.T) {
	assert.NotPanics(t, func() {
		ProjectStudent(models.Student{})
		ProjectLecturer(models.Lecturer{})
		ProjectCourse(models.Course{})
		ProjectRegistration(models.Registration{})
		ProjectExam(models.Exam{})
		ProjectAttendance(models.AttendanceRecord{})
		ProjectMaterial(models.Material{})
		ProjectAnnouncement(models.Announcement{})
		ProjectPayment(models.Payment{})
		ProjectRefund(models.Refund{})
		ProjectScholarship(models.Scholarship{})
		ProjectTuitionFee(models.TuitionFee{})
	})
}
