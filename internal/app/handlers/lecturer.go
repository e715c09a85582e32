package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/campushub/portal/internal/app/fetch"
	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/notify"
	"github.com/campushub/portal/internal/app/viewmodel"
	"github.com/campushub/portal/internal/app/views"
)

// Lecturer portal list pages.

func (h *Handlers) LecturerCourses(c *gin.Context) {
	renderList(h, c, "/lecturer/courses", "My Courses", h.Svc.Courses, views.CourseDescriptor(), views.CourseCards)
}

func (h *Handlers) LecturerStudents(c *gin.Context) {
	renderList(h, c, "/lecturer/students", "Students", h.Svc.Students, views.StudentDescriptor(), nil)
}

func (h *Handlers) LecturerExams(c *gin.Context) {
	renderList(h, c, "/lecturer/exams", "Exams", h.Svc.Exams, views.ExamDescriptor(), nil)
}

func (h *Handlers) LecturerAttendance(c *gin.Context) {
	renderList(h, c, "/lecturer/attendance", "Attendance", h.Svc.Attendance, views.AttendanceDescriptor(), views.AttendanceCards)
}

func (h *Handlers) LecturerMaterials(c *gin.Context) {
	renderList(h, c, "/lecturer/materials", "Materials", h.Svc.Materials, views.MaterialDescriptor(), nil)
}

func (h *Handlers) LecturerAnnouncements(c *gin.Context) {
	renderList(h, c, "/lecturer/announcements", "Announcements", h.Svc.Announcements, views.AnnouncementDescriptor(), nil)
}

// LecturerDashboard assembles the lecturer landing cards.
func (h *Handlers) LecturerDashboard(c *gin.Context) {
	sess := h.mustSession(c)

	var (
		courses    []models.Course
		exams      []models.Exam
		attendance []models.AttendanceRecord
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		courses, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/lecturer/courses"), false, h.Svc.Courses.List)
		return err
	})
	g.Go(func() (err error) {
		exams, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/lecturer/exams"), false, h.Svc.Exams.List)
		return err
	})
	g.Go(func() (err error) {
		attendance, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/lecturer/attendance"), false, h.Svc.Attendance.List)
		return err
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusBadGateway, ErrorPage{
			Title:   "Dashboard",
			Error:   PageError{Message: rootMessage(err)},
			Retry:   "/lecturer",
			Notices: notify.Pop(c),
		})
		return
	}

	cards := []views.StatCard{
		{Label: "My Courses", Value: strconv.Itoa(len(courses))},
		{Label: "Scheduled Exams", Value: strconv.Itoa(len(exams))},
	}
	cards = append(cards, views.AttendanceCards(viewmodel.Apply(views.AttendanceDescriptor(), attendance, viewmodel.State{}).All)...)

	c.JSON(http.StatusOK, gin.H{
		"title":   "Lecturer Dashboard",
		"nav":     models.Nav(sess.Role),
		"user":    sess.Name,
		"cards":   cards,
		"notices": notify.Pop(c),
	})
}

// Exam scheduling.

type examForm struct {
	CourseID   string `form:"course_id" json:"course_id" validate:"required,uuid"`
	CourseCode string `form:"course_code" json:"course_code" validate:"required"`
	Title      string `form:"title" json:"title" validate:"required"`
	Room       string `form:"room" json:"room"`
	StartsAt   string `form:"starts_at" json:"starts_at" validate:"required"`
}

func (h *Handlers) ScheduleExam(c *gin.Context) {
	var form examForm
	if !h.submitForm(c, &form) {
		return
	}
	startsAt, err := time.Parse(time.RFC3339, form.StartsAt)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, FormErrors{
			Fields: map[string]string{"starts_at": "Starts At must be a valid timestamp"},
			Values: form,
		})
		return
	}
	rec := models.Exam{
		CourseID:   uuid.MustParse(form.CourseID),
		CourseCode: form.CourseCode,
		Title:      form.Title,
		StartsAt:   startsAt,
		Status:     "scheduled",
	}
	if form.Room != "" {
		rec.Room = &form.Room
	}
	if _, err := h.Svc.Exams.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Schedule exam", form, err)
		return
	}
	h.mutationSucceeded(c, "/lecturer/exams", "Exam scheduled", form.Title+" for "+form.CourseCode)
}

func (h *Handlers) CancelExam(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Exams.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Cancel exam", nil, err)
		return
	}
	h.mutationSucceeded(c, "/lecturer/exams", "Exam cancelled", "The exam was removed from the schedule")
}

// Attendance marking.

type attendanceForm struct {
	CourseID    string `form:"course_id" json:"course_id" validate:"required,uuid"`
	CourseCode  string `form:"course_code" json:"course_code" validate:"required"`
	StudentID   string `form:"student_id" json:"student_id" validate:"required,uuid"`
	StudentName string `form:"student_name" json:"student_name" validate:"required"`
	SessionDate string `form:"session_date" json:"session_date" validate:"required"`
	Status      string `form:"status" json:"status" validate:"required,oneof=present absent excused"`
}

func (h *Handlers) MarkAttendance(c *gin.Context) {
	var form attendanceForm
	if !h.submitForm(c, &form) {
		return
	}
	sessionDate, err := time.Parse("2006-01-02", form.SessionDate)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, FormErrors{
			Fields: map[string]string{"session_date": "Session Date must be a valid date"},
			Values: form,
		})
		return
	}
	rec := models.AttendanceRecord{
		CourseID:    uuid.MustParse(form.CourseID),
		CourseCode:  form.CourseCode,
		StudentID:   uuid.MustParse(form.StudentID),
		StudentName: form.StudentName,
		SessionDate: sessionDate,
		Status:      form.Status,
	}
	if _, err := h.Svc.Attendance.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Mark attendance", form, err)
		return
	}
	h.mutationSucceeded(c, "/lecturer/attendance", "Attendance marked", form.StudentName+" "+form.Status)
}

// Material sharing.

type materialForm struct {
	CourseID   string `form:"course_id" json:"course_id" validate:"required,uuid"`
	CourseCode string `form:"course_code" json:"course_code" validate:"required"`
	Title      string `form:"title" json:"title" validate:"required"`
	Kind       string `form:"kind" json:"kind" validate:"required,oneof=slides notes video link"`
	URL        string `form:"url" json:"url" validate:"required,url"`
}

func (h *Handlers) ShareMaterial(c *gin.Context) {
	var form materialForm
	if !h.submitForm(c, &form) {
		return
	}
	sess := h.mustSession(c)
	rec := models.Material{
		CourseID:   uuid.MustParse(form.CourseID),
		CourseCode: form.CourseCode,
		Title:      form.Title,
		Kind:       form.Kind,
		URL:        form.URL,
		UploadedBy: &sess.Name,
		UploadedAt: time.Now(),
	}
	if _, err := h.Svc.Materials.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Share material", form, err)
		return
	}
	h.mutationSucceeded(c, "/lecturer/materials", "Material shared", form.Title+" for "+form.CourseCode)
}

func (h *Handlers) RemoveMaterial(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Materials.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Remove material", nil, err)
		return
	}
	h.mutationSucceeded(c, "/lecturer/materials", "Material removed", "The material was deleted")
}
