package errs

import "errors"

// Domain-specific sentinel errors for the usecase layers
var (
	// Catalog errors
	ErrCabinNotFound  = errors.New("cabin not found")
	ErrTariffNotFound = errors.New("tariff not found")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingConflict   = errors.New("booking conflict")
	ErrInvalidStayPeriod = errors.New("invalid stay period")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Validation errors
	ErrValidation = errors.New("validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
