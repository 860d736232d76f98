package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Attendance errors
var (
	ErrAttendanceLogNotFound = errors.New("attendance log not found")
	ErrAlreadyClockedIn      = errors.New("already clocked in for this date")
	ErrAlreadyClockedOut     = errors.New("attendance log already closed")
	ErrClockSkew             = errors.New("clock-out time precedes clock-in time")
)

// Payroll errors
var (
	ErrPayrollNotFound = errors.New("payroll record not found")
	ErrAlreadyPaid     = errors.New("payroll record already marked as paid")
	ErrInvalidMonth    = errors.New("invalid month, expected YYYY-MM")
)
