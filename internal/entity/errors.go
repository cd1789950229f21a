package entity

import "errors"

var (
	// Car errors
	ErrCarNotFound  = errors.New("car not found")
	ErrCarForbidden = errors.New("car belongs to another user")

	// Service record errors
	ErrRecordNotFound     = errors.New("service record not found")
	ErrInvalidServiceType = errors.New("invalid service type")
	ErrExpiryDateRequired = errors.New("expiry date is required")

	// User errors
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrInvalidReminderDays = errors.New("reminder days must be between 1 and 365")

	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
)
