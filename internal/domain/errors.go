package domain

import "errors"

// Domain errors
var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrCategoryNotFound   = errors.New("expense category not found")
	ErrCategoryInUse      = errors.New("expense category is still referenced by expenses")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrNegativeQuantity   = errors.New("quantity cannot be negative")
	ErrSearchTermTooShort = errors.New("search term is too short")
	ErrNoExpensesInRange  = errors.New("no expenses in the requested range")
)

// Validation constants
const (
	MaxCategoryNameLength = 100
	MaxExpenseNameLength  = 200
	MinSearchTermLength   = 3
)
