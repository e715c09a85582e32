package views

import (
	"fmt"

	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/viewmodel"
)

type CourseView struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Title    string `json:"title"`
	Dept     string `json:"department"`
	Credits  int    `json:"credits"`
	Semester string `json:"semester"`
	Lecturer string `json:"lecturer"`
	Status   string `json:"status"`
}

func ProjectCourse(c models.Course) CourseView {
	return CourseView{
		ID:       c.ID.String(),
		Code:     c.Code,
		Title:    c.Title,
		Dept:     c.Department,
		Credits:  c.Credits,
		Semester: c.Semester,
		Lecturer: orPlaceholder(c.LecturerName, PlaceholderUnassigned),
		Status:   titleCase(c.Status),
	}
}

func CourseDescriptor() viewmodel.Descriptor[models.Course, CourseView] {
	return viewmodel.Descriptor[models.Course, CourseView]{
		Project: ProjectCourse,
		Search: []func(CourseView) string{
			func(v CourseView) string { return v.Code },
			func(v CourseView) string { return v.Title },
			func(v CourseView) string { return v.Lecturer },
		},
		Filters: map[string]viewmodel.Filter[CourseView]{
			"department": {Value: func(v CourseView) string { return v.Dept }, Sentinel: AllDepartments},
			"semester":   {Value: func(v CourseView) string { return v.Semester }, Sentinel: AllSemesters},
			"status":     {Value: func(v CourseView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

func CourseCards(all []CourseView) []StatCard {
	credits := viewmodel.SumBy(all, func(v CourseView) int64 { return int64(v.Credits) })
	unassigned := 0
	for _, v := range all {
		if v.Lecturer == PlaceholderUnassigned {
			unassigned++
		}
	}
	return []StatCard{
		{Label: "Total Courses", Value: fmt.Sprintf("%d", len(all))},
		{Label: "Total Credits", Value: fmt.Sprintf("%d", credits)},
		{Label: "Unassigned", Value: fmt.Sprintf("%d", unassigned)},
	}
}

type RegistrationView struct {
	ID           string `json:"id"`
	Student      string `json:"student"`
	CourseCode   string `json:"course_code"`
	CourseTitle  string `json:"course_title"`
	Semester     string `json:"semester"`
	Status       string `json:"status"`
	RegisteredOn string `json:"registered_on"`
}

func ProjectRegistration(r models.Registration) RegistrationView {
	return RegistrationView{
		ID:           r.ID.String(),
		Student:      r.StudentName,
		CourseCode:   r.CourseCode,
		CourseTitle:  orPlaceholder(r.CourseTitle, PlaceholderNA),
		Semester:     r.Semester,
		Status:       titleCase(r.Status),
		RegisteredOn: formatDate(r.RegisteredAt),
	}
}

func RegistrationDescriptor() viewmodel.Descriptor[models.Registration, RegistrationView] {
	return viewmodel.Descriptor[models.Registration, RegistrationView]{
		Project: ProjectRegistration,
		Search: []func(RegistrationView) string{
			func(v RegistrationView) string { return v.Student },
			func(v RegistrationView) string { return v.CourseCode },
			func(v RegistrationView) string { return v.CourseTitle },
		},
		Filters: map[string]viewmodel.Filter[RegistrationView]{
			"semester": {Value: func(v RegistrationView) string { return v.Semester }, Sentinel: AllSemesters},
			"status":   {Value: func(v RegistrationView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

type ExamView struct {
	ID         string `json:"id"`
	CourseCode string `json:"course_code"`
	Title      string `json:"title"`
	Room       string `json:"room"`
	StartsAt   string `json:"starts_at"`
	Status     string `json:"status"`
}

func ProjectExam(e models.Exam) ExamView {
	return ExamView{
		ID:         e.ID.String(),
		CourseCode: e.CourseCode,
		Title:      e.Title,
		Room:       orPlaceholder(e.Room, PlaceholderNA),
		StartsAt:   formatDateTime(e.StartsAt),
		Status:     titleCase(e.Status),
	}
}

func ExamDescriptor() viewmodel.Descriptor[models.Exam, ExamView] {
	return viewmodel.Descriptor[models.Exam, ExamView]{
		Project: ProjectExam,
		Search: []func(ExamView) string{
			func(v ExamView) string { return v.Title },
			func(v ExamView) string { return v.CourseCode },
		},
		Filters: map[string]viewmodel.Filter[ExamView]{
			"status": {Value: func(v ExamView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

type AttendanceView struct {
	ID         string `json:"id"`
	CourseCode string `json:"course_code"`
	Student    string `json:"student"`
	Session    string `json:"session"`
	Status     string `json:"status"`
}

func ProjectAttendance(a models.AttendanceRecord) AttendanceView {
	return AttendanceView{
		ID:         a.ID.String(),
		CourseCode: a.CourseCode,
		Student:    a.StudentName,
		Session:    formatDate(a.SessionDate),
		Status:     titleCase(a.Status),
	}
}

func AttendanceDescriptor() viewmodel.Descriptor[models.AttendanceRecord, AttendanceView] {
	return viewmodel.Descriptor[models.AttendanceRecord, AttendanceView]{
		Project: ProjectAttendance,
		Search: []func(AttendanceView) string{
			func(v AttendanceView) string { return v.Student },
			func(v AttendanceView) string { return v.CourseCode },
		},
		Filters: map[string]viewmodel.Filter[AttendanceView]{
			"status": {Value: func(v AttendanceView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

// AttendanceCards reports the present rate over the full record set.
func AttendanceCards(all []AttendanceView) []StatCard {
	present := 0
	for _, v := range all {
		if v.Status == "Present" {
			present++
		}
	}
	return []StatCard{
		{Label: "Sessions Recorded", Value: fmt.Sprintf("%d", len(all))},
		{Label: "Present Rate", Value: fmt.Sprintf("%d%%", viewmodel.Percent(present, len(all)))},
	}
}

type MaterialView struct {
	ID         string `json:"id"`
	CourseCode string `json:"course_code"`
	Title      string `json:"title"`
	Kind       string `json:"kind"`
	URL        string `json:"url"`
	UploadedBy string `json:"uploaded_by"`
	UploadedOn string `json:"uploaded_on"`
}

func ProjectMaterial(m models.Material) MaterialView {
	return MaterialView{
		ID:         m.ID.String(),
		CourseCode: m.CourseCode,
		Title:      m.Title,
		Kind:       titleCase(m.Kind),
		URL:        m.URL,
		UploadedBy: orPlaceholder(m.UploadedBy, PlaceholderNA),
		UploadedOn: formatDate(m.UploadedAt),
	}
}

func MaterialDescriptor() viewmodel.Descriptor[models.Material, MaterialView] {
	return viewmodel.Descriptor[models.Material, MaterialView]{
		Project: ProjectMaterial,
		Search: []func(MaterialView) string{
			func(v MaterialView) string { return v.Title },
			func(v MaterialView) string { return v.CourseCode },
		},
		Filters: map[string]viewmodel.Filter[MaterialView]{
			"kind": {Value: func(v MaterialView) string { return v.Kind }, Sentinel: AllKinds},
		},
	}
}

type AnnouncementView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience"`
	PostedBy string `json:"posted_by"`
	PostedOn string `json:"posted_on"`
}

func ProjectAnnouncement(a models.Announcement) AnnouncementView {
	return AnnouncementView{
		ID:       a.ID.String(),
		Title:    a.Title,
		Body:     a.Body,
		Audience: titleCase(a.Audience),
		PostedBy: orPlaceholder(a.PostedBy, PlaceholderNA),
		PostedOn: formatDate(a.PostedAt),
	}
}

func AnnouncementDescriptor() viewmodel.Descriptor[models.Announcement, AnnouncementView] {
	return viewmodel.Descriptor[models.Announcement, AnnouncementView]{
		Project: ProjectAnnouncement,
		Search: []func(AnnouncementView) string{
			func(v AnnouncementView) string { return v.Title },
			func(v AnnouncementView) string { return v.Body },
		},
		Filters: map[string]viewmodel.Filter[AnnouncementView]{
			"audience": {Value: func(v AnnouncementView) string { return v.Audience }, Sentinel: AllAudiences},
		},
	}
}
