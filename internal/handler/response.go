package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the envelope for every error body. Clients check the
// success flag rather than inferring failure from the HTTP status alone.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a single validation error
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ConfirmationResponse is the envelope for operations with no entity to
// return, such as deletes.
type ConfirmationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, message string, errors []FieldError) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	})
}

// NewConflictError creates a conflict error response. Duplicate budget
// periods report 400, matching the wire contract the clients expect.
func NewConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// NewNotFoundError creates a not found error response. Ownership mismatches
// use the same body as plain absence so existence is never leaked.
func NewNotFoundError(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// NewInternalError creates an internal error response. The underlying error
// is logged at the call site, never sent to the client.
func NewInternalError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Message: message,
	})
}
