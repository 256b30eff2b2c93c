// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrChartNotFound   = errors.New("chart not found")
	ErrInvalidChart    = errors.New("invalid chart")
	ErrMissingMoon     = errors.New("lagna chart has no moon placement")
	ErrInputValidation = errors.New("input validation failed")
	ErrDatabaseError   = errors.New("database error")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrProviderFailed  = errors.New("position provider failed")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap returns ErrInputValidation unless a more specific cause was set.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInputValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ChartError represents a structural problem in a chart.
type ChartError struct {
	Chart  string
	House  int
	Reason string
	Err    error
}

func (e *ChartError) Error() string {
	if e.House > 0 {
		return fmt.Sprintf("chart error [%s] house %d: %s", e.Chart, e.House, e.Reason)
	}
	return fmt.Sprintf("chart error [%s]: %s", e.Chart, e.Reason)
}

// Unwrap reports both ErrInvalidChart and the specific cause, if any.
func (e *ChartError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidChart, e.Err}
	}
	return []error{ErrInvalidChart}
}

// NewChartError creates a new ChartError.
func NewChartError(chart string, house int, reason string, err error) *ChartError {
	return &ChartError{
		Chart:  chart,
		House:  house,
		Reason: reason,
		Err:    err,
	}
}

// StoreError represents a failure in the persistence sink.
type StoreError struct {
	Operation string
	ID        string
	Err       error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store error [%s] %s: %v", e.Operation, e.ID, e.Err)
	}
	return fmt.Sprintf("store error [%s]: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, id string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		ID:        id,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsTransient reports whether err is worth retrying against the store.
// Only database failures qualify; encoding and lookup errors repeat identically.
func IsTransient(err error) bool {
	var se *StoreError
	if !errors.As(err, &se) {
		return false
	}
	return errors.Is(err, ErrDatabaseError)
}
