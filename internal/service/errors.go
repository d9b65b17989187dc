package service

import "errors"

// Sentinel errors translated to HTTP statuses at the handler layer.
var (
	ErrEmailTaken       = errors.New("an account with this email already exists")
	ErrDuplicatePayment = errors.New("salary already paid for this month and year")
)
