package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrConflict
	ErrState
	ErrConcurrency
	ErrInternal
)

// Rejection reasons carried on validation, conflict and state errors so
// callers can render a precise message or retry with a different slot.
const (
	ReasonInvalidWindow       = "invalid_window"
	ReasonInvalidAmount       = "invalid_amount"
	ReasonInvalidRule         = "invalid_rule"
	ReasonCurrencyMismatch    = "currency_mismatch"
	ReasonArtistClosed        = "artist_closed"
	ReasonOutsideWorkingHours = "outside_working_hours"
	ReasonSlotTaken           = "slot_taken"
	ReasonInvalidTransition   = "invalid_transition"
	ReasonSerialization       = "serialization_timeout"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Reason  string    `json:"reason,omitempty"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Validation(reason, message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Reason:  reason,
		Message: message,
	}
}

func Conflict(reason, message string) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Reason:  reason,
		Message: message,
	}
}

func State(reason, message string) *AppError {
	return &AppError{
		Code:    ErrState,
		Reason:  reason,
		Message: message,
	}
}

func Concurrency(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConcurrency,
		Reason:  ReasonSerialization,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf extracts the error code from err, ErrInternal when err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// ReasonOf extracts the rejection reason from err, empty when none.
func ReasonOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}

func IsNotFound(err error) bool    { return CodeOf(err) == ErrNotFound }
func IsValidation(err error) bool  { return CodeOf(err) == ErrValidation }
func IsConflict(err error) bool    { return CodeOf(err) == ErrConflict }
func IsState(err error) bool       { return CodeOf(err) == ErrState }
func IsConcurrency(err error) bool { return CodeOf(err) == ErrConcurrency }
