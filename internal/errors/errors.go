// Package errors provides custom error types for the ledger engine.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to callers.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}

	// ErrCategoryMissing is distinct from ErrCategoryNotFound: it signals a
	// purchase insert or update that names a category nobody has created.
	// The write is refused rather than silently inserted with a null
	// category reference.
	ErrCategoryMissing = &AppError{Code: "CATEGORY_MISSING", Message: "Purchase references a category that does not exist", StatusCode: http.StatusUnprocessableEntity}
)

// Purchase errors.
var (
	ErrPurchaseNotFound = &AppError{Code: "PURCHASE_NOT_FOUND", Message: "Purchase not found", StatusCode: http.StatusNotFound}

	// ErrInvalidRecord is raised when a bulk-ingest record fails validation
	// (most commonly a purchase with no category at all). For bulk ingestion
	// it also unwinds every record inserted earlier in the same call.
	ErrInvalidRecord = &AppError{Code: "INVALID_RECORD", Message: "Record failed validation", StatusCode: http.StatusUnprocessableEntity}
)

// Pay-period errors.
var (
	ErrPayPeriodNotFound = &AppError{Code: "PAY_PERIOD_NOT_FOUND", Message: "Pay period not found", StatusCode: http.StatusNotFound}
)
