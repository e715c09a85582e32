package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/campushub/portal/internal/app/fetch"
	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/notify"
	"github.com/campushub/portal/internal/app/viewmodel"
	"github.com/campushub/portal/internal/app/views"
)

// Admin portal list pages.

func (h *Handlers) AdminStudents(c *gin.Context) {
	renderList(h, c, "/admin/students", "Students", h.Svc.Students, views.StudentDescriptor(), views.StudentCards)
}

func (h *Handlers) AdminLecturers(c *gin.Context) {
	renderList(h, c, "/admin/lecturers", "Lecturers", h.Svc.Lecturers, views.LecturerDescriptor(), views.LecturerCards)
}

func (h *Handlers) AdminCourses(c *gin.Context) {
	renderList(h, c, "/admin/courses", "Courses", h.Svc.Courses, views.CourseDescriptor(), views.CourseCards)
}

func (h *Handlers) AdminAnnouncements(c *gin.Context) {
	renderList(h, c, "/admin/announcements", "Announcements", h.Svc.Announcements, views.AnnouncementDescriptor(), nil)
}

// AdminDashboard fans the headline collections out concurrently and builds
// the stat cards over each full set.
func (h *Handlers) AdminDashboard(c *gin.Context) {
	sess := h.mustSession(c)

	var (
		students  []models.Student
		lecturers []models.Lecturer
		courses   []models.Course
		payRecs   []models.Payment
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		students, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/admin/students"), false, h.Svc.Students.List)
		return err
	})
	g.Go(func() (err error) {
		lecturers, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/admin/lecturers"), false, h.Svc.Lecturers.List)
		return err
	})
	g.Go(func() (err error) {
		courses, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/admin/courses"), false, h.Svc.Courses.List)
		return err
	})
	g.Go(func() (err error) {
		payRecs, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/admin/payments"), false, h.Svc.Payments.List)
		return err
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusBadGateway, ErrorPage{
			Title:   "Dashboard",
			Error:   PageError{Message: rootMessage(err)},
			Retry:   "/admin",
			Notices: notify.Pop(c),
		})
		return
	}

	cards := views.StudentCards(viewmodel.Apply(views.StudentDescriptor(), students, viewmodel.State{}).All)
	cards = append(cards, views.LecturerCards(viewmodel.Apply(views.LecturerDescriptor(), lecturers, viewmodel.State{}).All)...)
	cards = append(cards, views.CourseCards(viewmodel.Apply(views.CourseDescriptor(), courses, viewmodel.State{}).All)...)
	cards = append(cards, views.PaymentCards(viewmodel.Apply(views.PaymentDescriptor(), payRecs, viewmodel.State{}).All)...)

	c.JSON(http.StatusOK, gin.H{
		"title":   "Admin Dashboard",
		"nav":     models.Nav(sess.Role),
		"user":    sess.Name,
		"cards":   cards,
		"notices": notify.Pop(c),
	})
}

// Student mutations.

type studentForm struct {
	FirstName  string `form:"first_name" json:"first_name" validate:"required"`
	LastName   string `form:"last_name" json:"last_name" validate:"required"`
	Email      string `form:"email" json:"email" validate:"required,email"`
	Department string `form:"department" json:"department" validate:"required"`
	Year       int    `form:"year" json:"year" validate:"required,min=1,max=6"`
	Status     string `form:"status" json:"status" validate:"required,oneof=active suspended graduated"`
}

func (f studentForm) record() models.Student {
	return models.Student{
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Email:      f.Email,
		Department: f.Department,
		Year:       f.Year,
		Status:     f.Status,
		EnrolledAt: time.Now(),
	}
}

func (h *Handlers) CreateStudent(c *gin.Context) {
	var form studentForm
	if !h.submitForm(c, &form) {
		return
	}
	if _, err := h.Svc.Students.Create(c.Request.Context(), form.record()); err != nil {
		h.mutationFailed(c, "Create student", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/students", "Student created", form.FirstName+" "+form.LastName+" was added")
}

func (h *Handlers) UpdateStudent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var form studentForm
	if !h.submitForm(c, &form) {
		return
	}
	if _, err := h.Svc.Students.Update(c.Request.Context(), id, form.record()); err != nil {
		h.mutationFailed(c, "Update student", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/students", "Student updated", form.FirstName+" "+form.LastName+" was updated")
}

func (h *Handlers) DeleteStudent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Students.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Delete student", nil, err)
		return
	}
	h.mutationSucceeded(c, "/admin/students", "Student removed", "The student record was deleted")
}

// Lecturer mutations.

type lecturerForm struct {
	FirstName  string `form:"first_name" json:"first_name" validate:"required"`
	LastName   string `form:"last_name" json:"last_name" validate:"required"`
	Email      string `form:"email" json:"email" validate:"required,email"`
	Department string `form:"department" json:"department" validate:"required"`
	Title      string `form:"title" json:"title"`
}

func (h *Handlers) CreateLecturer(c *gin.Context) {
	var form lecturerForm
	if !h.submitForm(c, &form) {
		return
	}
	rec := models.Lecturer{
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Email:      form.Email,
		Department: form.Department,
		Status:     "active",
		HiredAt:    time.Now(),
	}
	if form.Title != "" {
		rec.Title = &form.Title
	}
	if _, err := h.Svc.Lecturers.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Create lecturer", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/lecturers", "Lecturer created", form.FirstName+" "+form.LastName+" was added")
}

func (h *Handlers) DeleteLecturer(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Lecturers.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Delete lecturer", nil, err)
		return
	}
	h.mutationSucceeded(c, "/admin/lecturers", "Lecturer removed", "The lecturer record was deleted")
}

// Course mutations.

type courseForm struct {
	Code       string `form:"code" json:"code" validate:"required"`
	Title      string `form:"title" json:"title" validate:"required"`
	Department string `form:"department" json:"department" validate:"required"`
	Credits    int    `form:"credits" json:"credits" validate:"required,min=1,max=30"`
	Semester   string `form:"semester" json:"semester" validate:"required"`
}

func (h *Handlers) CreateCourse(c *gin.Context) {
	var form courseForm
	if !h.submitForm(c, &form) {
		return
	}
	rec := models.Course{
		Code:       form.Code,
		Title:      form.Title,
		Department: form.Department,
		Credits:    form.Credits,
		Semester:   form.Semester,
		Status:     "open",
	}
	if _, err := h.Svc.Courses.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Create course", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/courses", "Course created", form.Code+" was added")
}

func (h *Handlers) DeleteCourse(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Courses.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Delete course", nil, err)
		return
	}
	h.mutationSucceeded(c, "/admin/courses", "Course removed", "The course was deleted")
}

// Announcement mutations.

type announcementForm struct {
	Title    string `form:"title" json:"title" validate:"required"`
	Body     string `form:"body" json:"body" validate:"required"`
	Audience string `form:"audience" json:"audience" validate:"required,oneof=all students lecturers"`
}

func (h *Handlers) CreateAnnouncement(c *gin.Context) {
	var form announcementForm
	if !h.submitForm(c, &form) {
		return
	}
	sess := h.mustSession(c)
	rec := models.Announcement{
		Title:    form.Title,
		Body:     form.Body,
		Audience: form.Audience,
		PostedBy: &sess.Name,
		PostedAt: time.Now(),
	}
	if _, err := h.Svc.Announcements.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Post announcement", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/announcements", "Announcement posted", form.Title)
}

func (h *Handlers) DeleteAnnouncement(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Announcements.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Delete announcement", nil, err)
		return
	}
	h.mutationSucceeded(c, "/admin/announcements", "Announcement removed", "The announcement was deleted")
}
