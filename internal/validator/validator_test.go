package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleTicket struct {
	Subject  string `json:"subject" validate:"required,min=3"`
	Priority string `json:"priority" validate:"is-priority"`
	Status   string `json:"status" validate:"is-ticket-status"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestValidate_OK(t *testing.T) {
	v := New()

	err := v.Validate(&sampleTicket{
		Subject:  "Billing question",
		Priority: "high",
		Status:   "Open",
	})
	assert.NoError(t, err)
}

func TestValidate_FieldNamesFromJSONTags(t *testing.T) {
	v := New()

	err := v.Validate(&sampleTicket{Subject: "", Email: "not-an-email"})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, verr.Errors, "subject")
	assert.Contains(t, verr.Errors, "email")
	assert.Equal(t, "This field is required", verr.Errors["subject"])
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	err := v.Validate(&sampleTicket{
		Subject:  "Billing question",
		Priority: "urgent",
		Status:   "Reopened",
	})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be one of: low, medium, high", verr.Errors["priority"])
	assert.Equal(t, "Must be a valid ticket status", verr.Errors["status"])
}

func TestValidate_EmptyCustomValuesPass(t *testing.T) {
	v := New()

	// Emptiness is for 'required' to decide, not the domain tags.
	err := v.Validate(&sampleTicket{Subject: "Billing question"})
	assert.NoError(t, err)
}
