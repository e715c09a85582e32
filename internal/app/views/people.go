package views

import (
	"fmt"
	"time"

	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/viewmodel"
)

// StudentView is what the student list pages render.
type StudentView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Status     string `json:"status"`
	AvatarURL  string `json:"avatar_url"`
	EnrolledOn string `json:"enrolled_on"`
}

func ProjectStudent(s models.Student) StudentView {
	return StudentView{
		ID:         s.ID.String(),
		Name:       fmt.Sprintf("%s %s", s.FirstName, s.LastName),
		Email:      s.Email,
		Department: s.Department,
		Year:       yearLabel(s.Year),
		Status:     titleCase(s.Status),
		AvatarURL:  orPlaceholder(s.AvatarURL, DefaultAvatar),
		EnrolledOn: formatDate(s.EnrolledAt),
	}
}

// StudentDescriptor drives the admin students list: search over name, email
// and department; filters by department and status.
func StudentDescriptor() viewmodel.Descriptor[models.Student, StudentView] {
	return viewmodel.Descriptor[models.Student, StudentView]{
		Project: ProjectStudent,
		Search: []func(StudentView) string{
			func(v StudentView) string { return v.Name },
			func(v StudentView) string { return v.Email },
			func(v StudentView) string { return v.Department },
		},
		Filters: map[string]viewmodel.Filter[StudentView]{
			"department": {Value: func(v StudentView) string { return v.Department }, Sentinel: AllDepartments},
			"status":     {Value: func(v StudentView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

// StudentCards builds the dashboard summary cards over the full set.
func StudentCards(all []StudentView) []StatCard {
	active := 0
	for _, v := range all {
		if v.Status == titleCase(models.StudentActive) {
			active++
		}
	}
	departments := viewmodel.CountBy(all, func(v StudentView) string { return v.Department })
	return []StatCard{
		{Label: "Total Students", Value: fmt.Sprintf("%d", len(all))},
		{Label: "Active", Value: fmt.Sprintf("%d", active), Hint: fmt.Sprintf("%d%% of all students", viewmodel.Percent(active, len(all)))},
		{Label: "Departments", Value: fmt.Sprintf("%d", len(departments))},
	}
}

// LecturerView is what the lecturer list pages render.
type LecturerView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Tenure     string `json:"tenure"`
}

func ProjectLecturer(l models.Lecturer) LecturerView {
	return projectLecturerAt(l, time.Now())
}

func projectLecturerAt(l models.Lecturer, now time.Time) LecturerView {
	return LecturerView{
		ID:         l.ID.String(),
		Name:       fmt.Sprintf("%s %s", l.FirstName, l.LastName),
		Email:      l.Email,
		Department: l.Department,
		Title:      orPlaceholder(l.Title, PlaceholderNA),
		Status:     titleCase(l.Status),
		Tenure:     yearsSince(l.HiredAt, now),
	}
}

func LecturerDescriptor() viewmodel.Descriptor[models.Lecturer, LecturerView] {
	return viewmodel.Descriptor[models.Lecturer, LecturerView]{
		Project: ProjectLecturer,
		Search: []func(LecturerView) string{
			func(v LecturerView) string { return v.Name },
			func(v LecturerView) string { return v.Email },
			func(v LecturerView) string { return v.Department },
		},
		Filters: map[string]viewmodel.Filter[LecturerView]{
			"department": {Value: func(v LecturerView) string { return v.Department }, Sentinel: AllDepartments},
			"status":     {Value: func(v LecturerView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

func LecturerCards(all []LecturerView) []StatCard {
	departments := viewmodel.CountBy(all, func(v LecturerView) string { return v.Department })
	return []StatCard{
		{Label: "Total Lecturers", Value: fmt.Sprintf("%d", len(all))},
		{Label: "Departments", Value: fmt.Sprintf("%d", len(departments))},
	}
}
