package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentForm struct {
	StudentID string `json:"student_id" validate:"required,uuid4"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Method    string `json:"method" validate:"required,oneof=card transfer cash"`
}

func TestValidFormPasses(t *testing.T) {
	form := paymentForm{
		StudentID: "8b8f9496-4efc-4a0b-9a53-7c29a9b6c8c1",
		Amount:    125000,
		Method:    "card",
	}
	assert.NoError(t, Struct(form))
}

func TestZeroAmountBlockedWithInlineMessage(t *testing.T) {
	form := paymentForm{
		StudentID: "8b8f9496-4efc-4a0b-9a53-7c29a9b6c8c1",
		Amount:    0,
		Method:    "card",
	}
	err := Struct(form)
	require.Error(t, err)

	fields := Fields(err)
	assert.Equal(t, "Amount must be greater than 0", fields["amount"])
	assert.Len(t, fields, 1)
}

func TestMissingRequiredFieldsReportedPerField(t *testing.T) {
	err := Struct(paymentForm{Amount: 100})
	require.Error(t, err)

	fields := Fields(err)
	assert.Contains(t, fields, "student_id")
	assert.Contains(t, fields, "method")
	assert.NotContains(t, fields, "amount")
}

func TestLabelTagOverridesFieldName(t *testing.T) {
	type form struct {
		Dept string `json:"department" label:"Department" validate:"required"`
	}
	fields := Fields(Struct(form{}))
	assert.Equal(t, "Department is a required field", fields["department"])
}

func TestNonValidationErrorStillSurfaces(t *testing.T) {
	fields := Fields(assert.AnError)
	require.Len(t, fields, 1)
	assert.Contains(t, fields, "form")
}
