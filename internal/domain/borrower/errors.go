package borrower

import "errors"

var (
	ErrNotFound         = errors.New("borrower not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrAlreadyCompleted = errors.New("loan is already completed")
	ErrInvalidAmount    = errors.New("amount must be positive")
)
