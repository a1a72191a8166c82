package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrOwnerNotFound        = errors.New("owner not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrBillNotFound         = errors.New("bill not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNameRequired         = errors.New("name is required")
	ErrInvalidMonth         = errors.New("month must be YYYY-MM")
	ErrInvalidDate          = errors.New("date must be YYYY-MM-DD")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidDueDay        = errors.New("due day must be between 1 and 31")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrConfirmationRequired = errors.New("month is closed; confirmation required")
)
