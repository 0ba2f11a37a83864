package lender

import "errors"

var (
	ErrNotFound      = errors.New("lender not found")
	ErrInvalidAmount = errors.New("transaction amount must be positive")
)
