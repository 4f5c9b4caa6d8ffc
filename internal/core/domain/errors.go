package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Lending errors
var (
	ErrIneligible       = errors.New("borrowing not permitted")
	ErrOutOfStock       = fmt.Errorf("%w: book is out of stock", ErrIneligible)
	ErrLoanLimitReached = fmt.Errorf("%w: loan limit reached", ErrIneligible)
	ErrAlreadyReturned  = errors.New("loan already returned")
	ErrBookOnLoan       = errors.New("book has outstanding loans")
)

// User errors
var (
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrUnknownUsername = fmt.Errorf("%w: username", ErrInvalidCredentials)
	ErrInvalidPassword = fmt.Errorf("%w: password", ErrInvalidCredentials)
)
