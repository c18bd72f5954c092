package payroll

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidStatus    = errors.New("attendance status must be Present, Absent or Half-Day")
	ErrInvalidMonth     = errors.New("month must be YYYY-MM")
	ErrMissingDate      = errors.New("date is required")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrMissingName      = errors.New("employee name is required")
	ErrInvalidRange     = errors.New("date range is empty or too long")
)
