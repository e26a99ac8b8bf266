package booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange = errors.New("check-out must be at least one night after check-in")
	ErrInvalidGroupSize = errors.New("group size must be at least 2")
	ErrInvalidBaseRate  = errors.New("nightly base rate must not be negative")
	ErrPriceMismatch    = errors.New("submitted total does not match the computed price")
	ErrInvalidRequest   = errors.New("invalid booking request")

	// ErrBookingIDConflict means the booking id was already dispatched with
	// different details. It is not a validation error: the request itself is
	// well-formed.
	ErrBookingIDConflict = errors.New("booking id already used for a different booking")
)

// Codes returned to the client alongside a rejected submission.
const (
	CodeInvalidDateRange = "InvalidDateRange"
	CodeInvalidGroupSize = "InvalidGroupSize"
	CodeInvalidBaseRate  = "InvalidBaseRate"
	CodePriceMismatch    = "PriceMismatch"
	CodeInvalidRequest   = "InvalidRequest"

	CodeBookingIDConflict = "BookingIdConflict"
)

// ValidationError rejects a submission before any side effect happens.
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error, msg string) error {
	return &ValidationError{
		Code:    codeFor(err),
		Message: msg,
		Err:     err,
	}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDateRange):
		return CodeInvalidDateRange
	case errors.Is(err, ErrInvalidGroupSize):
		return CodeInvalidGroupSize
	case errors.Is(err, ErrInvalidBaseRate):
		return CodeInvalidBaseRate
	case errors.Is(err, ErrPriceMismatch):
		return CodePriceMismatch
	default:
		return CodeInvalidRequest
	}
}

// AsValidationError converts any pricing or validation failure into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	for _, sentinel := range []error{ErrInvalidDateRange, ErrInvalidGroupSize, ErrInvalidBaseRate, ErrPriceMismatch, ErrInvalidRequest} {
		if errors.Is(err, sentinel) {
			return &ValidationError{Code: codeFor(sentinel), Message: err.Error(), Err: err}, true
		}
	}
	return nil, false
}
