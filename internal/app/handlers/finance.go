package handlers

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/views"
)

// Finance pages of the admin portal.

func (h *Handlers) AdminPayments(c *gin.Context) {
	renderList(h, c, "/admin/payments", "Payments", h.Svc.Payments, views.PaymentDescriptor(), views.PaymentCards)
}

func (h *Handlers) AdminRefunds(c *gin.Context) {
	renderList(h, c, "/admin/refunds", "Refunds", h.Svc.Refunds, views.RefundDescriptor(), nil)
}

func (h *Handlers) AdminScholarships(c *gin.Context) {
	renderList(h, c, "/admin/scholarships", "Scholarships", h.Svc.Scholarships, views.ScholarshipDescriptor(), nil)
}

func (h *Handlers) AdminTuition(c *gin.Context) {
	renderList(h, c, "/admin/tuition", "Tuition Fees", h.Svc.Tuition, views.TuitionFeeDescriptor(), nil)
}

// paymentForm is the create-payment modal. Amount is entered in whole
// currency units; gt=0 blocks a zero amount with an inline message before
// any service call.
type paymentForm struct {
	StudentID   string  `form:"student_id" json:"student_id" validate:"required,uuid"`
	StudentName string  `form:"student_name" json:"student_name" validate:"required"`
	Amount      float64 `form:"amount" json:"amount" validate:"gt=0"`
	Method      string  `form:"method" json:"method" validate:"required,oneof=card transfer cash"`
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// RecordPayment records a payment taken outside the card flow (transfer,
// cash at the bursar's office).
func (h *Handlers) RecordPayment(c *gin.Context) {
	var form paymentForm
	if !h.submitForm(c, &form) {
		return
	}
	rec := models.Payment{
		StudentID:   uuid.MustParse(form.StudentID),
		StudentName: form.StudentName,
		AmountCents: toCents(form.Amount),
		Currency:    "usd",
		Method:      form.Method,
		Status:      models.PaymentSucceeded,
		PaidAt:      time.Now(),
	}
	if _, err := h.Svc.Payments.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Record payment", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/payments", "Payment recorded", views.FormatMoney(rec.AmountCents, rec.Currency)+" from "+form.StudentName)
}

// refundForm drives the admin refund modal. An empty amount refunds the
// full payment.
type refundForm struct {
	PaymentID   string  `form:"payment_id" json:"payment_id" validate:"required,uuid"`
	StudentName string  `form:"student_name" json:"student_name" validate:"required"`
	Amount      float64 `form:"amount" json:"amount" validate:"omitempty,gt=0"`
	Reference   string  `form:"reference" json:"reference" validate:"required"`
	Reason      string  `form:"reason" json:"reason"`
}

// IssueRefund refunds through the payment provider first, then records the
// refund. A provider failure leaves no refund record behind.
func (h *Handlers) IssueRefund(c *gin.Context) {
	var form refundForm
	if !h.submitForm(c, &form) {
		return
	}

	var amount *int64
	if form.Amount > 0 {
		cents := toCents(form.Amount)
		amount = &cents
	}
	if err := h.Payments.RefundPayment(form.Reference, amount); err != nil {
		h.mutationFailed(c, "Issue refund", form, err)
		return
	}

	rec := models.Refund{
		PaymentID:   uuid.MustParse(form.PaymentID),
		StudentName: form.StudentName,
		Status:      "issued",
		RequestedAt: time.Now(),
	}
	if amount != nil {
		rec.AmountCents = *amount
	}
	if form.Reason != "" {
		rec.Reason = &form.Reason
	}
	if _, err := h.Svc.Refunds.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Issue refund", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/refunds", "Refund issued", "Refund for "+form.StudentName+" was issued")
}

type scholarshipForm struct {
	StudentID   string  `form:"student_id" json:"student_id" validate:"required,uuid"`
	StudentName string  `form:"student_name" json:"student_name" validate:"required"`
	Name        string  `form:"name" json:"name" validate:"required"`
	Amount      float64 `form:"amount" json:"amount" validate:"gt=0"`
}

func (h *Handlers) AwardScholarship(c *gin.Context) {
	var form scholarshipForm
	if !h.submitForm(c, &form) {
		return
	}
	rec := models.Scholarship{
		StudentID:   uuid.MustParse(form.StudentID),
		StudentName: form.StudentName,
		Name:        form.Name,
		AmountCents: toCents(form.Amount),
		Status:      "active",
		AwardedAt:   time.Now(),
	}
	if _, err := h.Svc.Scholarships.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Award scholarship", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/scholarships", "Scholarship awarded", form.Name+" awarded to "+form.StudentName)
}

func (h *Handlers) RevokeScholarship(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Scholarships.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Revoke scholarship", nil, err)
		return
	}
	h.mutationSucceeded(c, "/admin/scholarships", "Scholarship revoked", "The scholarship was revoked")
}

type tuitionForm struct {
	Department string  `form:"department" json:"department" validate:"required"`
	Year       int     `form:"year" json:"year" validate:"required,min=1,max=6"`
	Semester   string  `form:"semester" json:"semester" validate:"required"`
	Amount     float64 `form:"amount" json:"amount" validate:"gt=0"`
}

func (h *Handlers) SetTuitionFee(c *gin.Context) {
	var form tuitionForm
	if !h.submitForm(c, &form) {
		return
	}
	rec := models.TuitionFee{
		Department:  form.Department,
		Year:        form.Year,
		Semester:    form.Semester,
		AmountCents: toCents(form.Amount),
	}
	if _, err := h.Svc.Tuition.Create(c.Request.Context(), rec); err != nil {
		h.mutationFailed(c, "Set tuition fee", form, err)
		return
	}
	h.mutationSucceeded(c, "/admin/tuition", "Tuition fee set", form.Department+" "+form.Semester)
}

func (h *Handlers) RemoveTuitionFee(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.Tuition.Delete(c.Request.Context(), id); err != nil {
		h.mutationFailed(c, "Remove tuition fee", nil, err)
		return
	}
	h.mutationSucceeded(c, "/admin/tuition", "Tuition fee removed", "The fee row was deleted")
}
