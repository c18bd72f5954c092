package trade

import "errors"

var (
	ErrNotFound       = errors.New("bill not found")
	ErrMissingDate    = errors.New("bill date is required")
	ErrNoItems        = errors.New("bill has no line items")
	ErrNegativeAmount = errors.New("amounts must not be negative")
)
