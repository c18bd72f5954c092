package ledger

import "errors"

var (
	ErrInvalidType    = errors.New("entry type must be IN or OUT")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrMissingParty   = errors.New("party is required")
)
