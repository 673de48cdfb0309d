package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these
// onto HTTP status codes; anything else is a 500.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRollNoTaken        = errors.New("roll number already registered")
	ErrInvalidMealType    = errors.New("invalid meal type")
	ErrAlreadyMarked      = errors.New("meal already marked for this student")
	ErrNotMarked          = errors.New("meal is not marked for this student")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrUnavailable        = errors.New("item not available")
)
