package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository not-found error (gorm.ErrRecordNotFound
// behind a sentinel) into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Predefined errors for frequent static cases.

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Auth & account ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

// --- Tickets ---

var ErrTicketAccessDenied = New(
	CodeForbidden,
	"ticket",
	"Access to this ticket denied",
	http.StatusForbidden,
)

// --- Subscriptions & payments ---

var ErrNoActiveSubscription = New(
	CodeInvalidOperation,
	"subscription",
	"No active subscription",
	http.StatusForbidden,
)

var ErrNoInterviewCredits = New(
	CodeLimitExceeded,
	"subscription",
	"Interview credit limit reached",
	http.StatusForbidden,
)

var ErrInvalidPaymentSignature = New(
	CodeForbidden,
	"payment",
	"Invalid payment gateway signature",
	http.StatusForbidden,
)

var ErrPaymentGateway = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)

// --- Interviews ---

var ErrInterviewNotCompleted = New(
	CodeInvalidStatus,
	"interview",
	"Interview session is not completed yet",
	http.StatusConflict,
)

var ErrCodeExecution = New(
	CodeExternalServiceError,
	"interview",
	"Code execution service error",
	http.StatusServiceUnavailable,
)
