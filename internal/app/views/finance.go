package views

import (
	"fmt"

	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/viewmodel"
)

type PaymentView struct {
	ID        string `json:"id"`
	Student   string `json:"student"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
	PaidOn    string `json:"paid_on"`

	amountCents int64
}

func ProjectPayment(p models.Payment) PaymentView {
	return PaymentView{
		ID:          p.ID.String(),
		Student:     p.StudentName,
		Amount:      FormatMoney(p.AmountCents, p.Currency),
		Method:      titleCase(p.Method),
		Status:      titleCase(p.Status),
		Reference:   orPlaceholder(p.Reference, PlaceholderNA),
		PaidOn:      formatDate(p.PaidAt),
		amountCents: p.AmountCents,
	}
}

func PaymentDescriptor() viewmodel.Descriptor[models.Payment, PaymentView] {
	return viewmodel.Descriptor[models.Payment, PaymentView]{
		Project: ProjectPayment,
		Search: []func(PaymentView) string{
			func(v PaymentView) string { return v.Student },
			func(v PaymentView) string { return v.Reference },
		},
		Filters: map[string]viewmodel.Filter[PaymentView]{
			"method": {Value: func(v PaymentView) string { return v.Method }, Sentinel: AllMethods},
			"status": {Value: func(v PaymentView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

// PaymentCards aggregates the finance dashboard over the full set: total
// collected counts succeeded payments only.
func PaymentCards(all []PaymentView) []StatCard {
	var collected int64
	succeeded := 0
	for _, v := range all {
		if v.Status == titleCase(models.PaymentSucceeded) {
			collected += v.amountCents
			succeeded++
		}
	}
	return []StatCard{
		{Label: "Total Payments", Value: fmt.Sprintf("%d", len(all))},
		{Label: "Collected", Value: FormatMoney(collected, "usd")},
		{Label: "Success Rate", Value: fmt.Sprintf("%d%%", viewmodel.Percent(succeeded, len(all)))},
	}
}

type RefundView struct {
	ID          string `json:"id"`
	Student     string `json:"student"`
	Amount      string `json:"amount"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	RequestedOn string `json:"requested_on"`
}

func ProjectRefund(r models.Refund) RefundView {
	return RefundView{
		ID:          r.ID.String(),
		Student:     r.StudentName,
		Amount:      FormatMoney(r.AmountCents, "usd"),
		Reason:      orPlaceholder(r.Reason, PlaceholderNA),
		Status:      titleCase(r.Status),
		RequestedOn: formatDate(r.RequestedAt),
	}
}

func RefundDescriptor() viewmodel.Descriptor[models.Refund, RefundView] {
	return viewmodel.Descriptor[models.Refund, RefundView]{
		Project: ProjectRefund,
		Search: []func(RefundView) string{
			func(v RefundView) string { return v.Student },
			func(v RefundView) string { return v.Reason },
		},
		Filters: map[string]viewmodel.Filter[RefundView]{
			"status": {Value: func(v RefundView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

type ScholarshipView struct {
	ID        string `json:"id"`
	Student   string `json:"student"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	AwardedOn string `json:"awarded_on"`
}

func ProjectScholarship(s models.Scholarship) ScholarshipView {
	return ScholarshipView{
		ID:        s.ID.String(),
		Student:   s.StudentName,
		Name:      s.Name,
		Amount:    FormatMoney(s.AmountCents, "usd"),
		Status:    titleCase(s.Status),
		AwardedOn: formatDate(s.AwardedAt),
	}
}

func ScholarshipDescriptor() viewmodel.Descriptor[models.Scholarship, ScholarshipView] {
	return viewmodel.Descriptor[models.Scholarship, ScholarshipView]{
		Project: ProjectScholarship,
		Search: []func(ScholarshipView) string{
			func(v ScholarshipView) string { return v.Student },
			func(v ScholarshipView) string { return v.Name },
		},
		Filters: map[string]viewmodel.Filter[ScholarshipView]{
			"status": {Value: func(v ScholarshipView) string { return v.Status }, Sentinel: AllStatuses},
		},
	}
}

type TuitionFeeView struct {
	ID         string `json:"id"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Semester   string `json:"semester"`
	Amount     string `json:"amount"`
}

func ProjectTuitionFee(f models.TuitionFee) TuitionFeeView {
	return TuitionFeeView{
		ID:         f.ID.String(),
		Department: f.Department,
		Year:       yearLabel(f.Year),
		Semester:   f.Semester,
		Amount:     FormatMoney(f.AmountCents, "usd"),
	}
}

func TuitionFeeDescriptor() viewmodel.Descriptor[models.TuitionFee, TuitionFeeView] {
	return viewmodel.Descriptor[models.TuitionFee, TuitionFeeView]{
		Project: ProjectTuitionFee,
		Search: []func(TuitionFeeView) string{
			func(v TuitionFeeView) string { return v.Department },
		},
		Filters: map[string]viewmodel.Filter[TuitionFeeView]{
			"department": {Value: func(v TuitionFeeView) string { return v.Department }, Sentinel: AllDepartments},
			"semester":   {Value: func(v TuitionFeeView) string { return v.Semester }, Sentinel: AllSemesters},
		},
	}
}
