package domain

import (
	"errors"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrAgeNotEligible       = errors.New("age must be 18 or above")

	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("amount must be greater than 0")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
