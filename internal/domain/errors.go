package domain

import "errors"

// Domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternalError  = errors.New("internal error")
	ErrUserNotFound   = errors.New("user not found")
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already exists for this month and year")

	ErrInvalidMonth           = errors.New("month must be between 1 and 12")
	ErrInvalidYear            = errors.New("year is out of range")
	ErrInvalidAmount          = errors.New("amount must be a valid non-negative decimal")
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")

	ErrBudgetIDRequired    = errors.New("budget id is required")
	ErrTypeRequired        = errors.New("transaction type is required")
	ErrAmountRequired      = errors.New("amount is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 500
	MinYear              = 1900
	MaxYear              = 2100
)
