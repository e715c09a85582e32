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

// Student portal list pages.

func (h *Handlers) StudentRegistrations(c *gin.Context) {
	renderList(h, c, "/student/registrations", "My Registrations", h.Svc.Registrations, views.RegistrationDescriptor(), nil)
}

func (h *Handlers) StudentExams(c *gin.Context) {
	renderList(h, c, "/student/exams", "Exams", h.Svc.Exams, views.ExamDescriptor(), nil)
}

func (h *Handlers) StudentMaterials(c *gin.Context) {
	renderList(h, c, "/student/materials", "Course Materials", h.Svc.Materials, views.MaterialDescriptor(), nil)
}

func (h *Handlers) StudentPayments(c *gin.Context) {
	renderList(h, c, "/student/payments", "My Payments", h.Svc.Payments, views.PaymentDescriptor(), views.PaymentCards)
}

func (h *Handlers) StudentScholarships(c *gin.Context) {
	renderList(h, c, "/student/scholarships", "My Scholarships", h.Svc.Scholarships, views.ScholarshipDescriptor(), nil)
}

func (h *Handlers) StudentAnnouncements(c *gin.Context) {
	renderList(h, c, "/student/announcements", "Announcements", h.Svc.Announcements, views.AnnouncementDescriptor(), nil)
}

// StudentDashboard assembles the student landing cards.
func (h *Handlers) StudentDashboard(c *gin.Context) {
	sess := h.mustSession(c)

	var (
		regs    []models.Registration
		exams   []models.Exam
		payRecs []models.Payment
		posts   []models.Announcement
	)

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		regs, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/student/registrations"), false, h.Svc.Registrations.List)
		return err
	})
	g.Go(func() (err error) {
		exams, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/student/exams"), false, h.Svc.Exams.List)
		return err
	})
	g.Go(func() (err error) {
		payRecs, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/student/payments"), false, h.Svc.Payments.List)
		return err
	})
	g.Go(func() (err error) {
		posts, err = fetch.Load(ctx, h.Snapshots, snapshotKey(sess, "/student/announcements"), false, h.Svc.Announcements.List)
		return err
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusBadGateway, ErrorPage{
			Title:   "Dashboard",
			Error:   PageError{Message: rootMessage(err)},
			Retry:   "/student",
			Notices: notify.Pop(c),
		})
		return
	}

	cards := []views.StatCard{
		{Label: "Registered Courses", Value: strconv.Itoa(len(regs))},
		{Label: "Upcoming Exams", Value: strconv.Itoa(len(exams))},
		{Label: "Announcements", Value: strconv.Itoa(len(posts))},
	}
	cards = append(cards, views.PaymentCards(viewmodel.Apply(views.PaymentDescriptor(), payRecs, viewmodel.State{}).All)...)

	c.JSON(http.StatusOK, gin.H{
		"title":   "Student Dashboard",
		"nav":     models.Nav(sess.Role),
		"user":    sess.Name,
		"cards":   cards,
		"notices": notify.Pop(c),
	})
}

// Course registration round-trip.

type registrationForm struct {
	CourseID   string `form:"course_id" json:"course_id" validate:"required,uuid"`
	CourseCode string `form:"course_code" json:"course_code" validate:"required"`
	Semester   string `form:"semester" json:"semester" validate:"required"`
}

func (h *Handlers) RegisterCourse(c *gin.Context) {
	var form registrationForm
	if !h.submitForm(c, &form) {
		return
	}
	sess := h.mustSession(c)
	studentID, _ := uuid.Parse(sess.UserID)
	rec := models.Registration{
		StudentID:    studentID,
		StudentName:  sess.Name,
		CourseID:     uuid.MustParse(form.CourseID),
		CourseCode:   form.CourseCode,
		Semester:     form.Semester,
		Status:       "registered",
		RegisteredAt: time.Now(),
	}
	if _, err := h.Svc.Registrations.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Register course", form, err)
		return
	}
	h.mutationSucceeded(c, "/student/registrations", "Registered", "You are registered for "+form.CourseCode)
}

func (h *Handlers) DropRegistration(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Registrations.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Drop course", nil, err)
		return
	}
	h.mutationSucceeded(c, "/student/registrations", "Course dropped", "The registration was removed")
}

// payTuitionForm starts a card payment. Amount is entered in whole currency
// units and must be positive.
type payTuitionForm struct {
	Amount float64 `form:"amount" json:"amount" validate:"gt=0"`
}

// PayTuition creates a payment intent with the provider and records the
// pending payment. The front end confirms the intent with the returned
// client secret.
func (h *Handlers) PayTuition(c *gin.Context) {
	var form payTuitionForm
	if !h.submitForm(c, &form) {
		return
	}
	sess := h.mustSession(c)

	amountCents := toCents(form.Amount)
	intentID, clientSecret, err := h.Payments.CreatePaymentIntent(amountCents, "usd", map[string]string{
		"student_id": sess.UserID,
		"purpose":    "tuition",
	})
	if err != nil {
		h.mutationFailed(c, "Start payment", form, err)
		return
	}

	studentID, _ := uuid.Parse(sess.UserID)
	rec := models.Payment{
		StudentID:   studentID,
		StudentName: sess.Name,
		AmountCents: amountCents,
		Currency:    "usd",
		Method:      "card",
		Status:      models.PaymentPending,
		Reference:   &intentID,
		PaidAt:      time.Now(),
	}
	if _, err := h.Svc.Payments.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Start payment", form, err)
		return
	}

	h.Snapshots.Invalidate(snapshotKey(sess, "/student/payments"))
	notify.Push(c, notify.Notice{
		Variant:     notify.Success,
		Title:       "Payment started",
		Description: views.FormatMoney(amountCents, "usd") + " tuition payment created",
	})
	c.JSON(http.StatusOK, gin.H{
		"payment_intent": intentID,
		"client_secret":  clientSecret,
	})
}
