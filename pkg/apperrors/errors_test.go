package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternalError, "database", "query failed", http.StatusInternalServerError)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppError(t *testing.T) {
	appErr := New(CodeNotFound, "ticket", "Ticket not found", http.StatusNotFound)
	wrapped := fmt.Errorf("loading reply target: %w", appErr)

	got, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, got.Code)
	assert.Equal(t, http.StatusNotFound, got.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	err := ValidationError(map[string]string{"email": "Must be a valid email address"})

	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)
	details, ok := err.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
}

func TestErrNotFoundMapsTo404(t *testing.T) {
	err := ErrNotFound(errors.New("no rows"))
	assert.Equal(t, http.StatusNotFound, err.HTTPCode)
	assert.Equal(t, CodeNotFound, err.Code)
}
