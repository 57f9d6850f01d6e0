// Package errors provides custom error types for the jokeraudit system.
// Fatal conditions (an input that cannot be read, a source without a
// registration construct) surface as typed errors that match the sentinel
// values below through errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
var As = errors.As

// Sentinel errors for the jokeraudit system
var (
	// ErrInputUnavailable indicates that a required input could not be obtained
	ErrInputUnavailable = errors.New("input unavailable")

	// ErrRegistrationNotFound indicates that the implementation source has no
	// recognizable registration construct
	ErrRegistrationNotFound = errors.New("registration construct not found")

	// ErrMalformedRow indicates a document row that does not match the
	// expected column pattern
	ErrMalformedRow = errors.New("malformed row")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// InputError represents a required input that could not be read.
type InputError struct {
	Input string // "document", "source", "registry"
	Path  string
	Err   error
}

// Error implements the error interface
func (e *InputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s input %s unavailable: %v", e.Input, e.Path, e.Err)
	}
	return fmt.Sprintf("%s input unavailable: %v", e.Input, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *InputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *InputError) Is(target error) bool {
	return target == ErrInputUnavailable
}

// NewInputError creates a new InputError
func NewInputError(input, path string, err error) *InputError {
	return &InputError{Input: input, Path: path, Err: err}
}

// RegistrationNotFoundError is returned when the implementation source does
// not contain the registration construct.
type RegistrationNotFoundError struct {
	Construct string
	Source    string
}

// Error implements the error interface
func (e *RegistrationNotFoundError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("registration construct %s not found in %s", e.Construct, e.Source)
	}
	return fmt.Sprintf("registration construct %s not found", e.Construct)
}

// Is implements errors.Is support
func (e *RegistrationNotFoundError) Is(target error) bool {
	return target == ErrRegistrationNotFound
}

// NewRegistrationNotFoundError creates a new RegistrationNotFoundError
func NewRegistrationNotFoundError(construct, source string) *RegistrationNotFoundError {
	return &RegistrationNotFoundError{Construct: construct, Source: source}
}

// MalformedRowError describes a table-like document line that was skipped.
// The extractor absorbs these; they never abort a run.
type MalformedRowError struct {
	Line int
	Text string
}

// Error implements the error interface
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row at line %d: %q", e.Line, e.Text)
}

// Is implements errors.Is support
func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "json", "markdown"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsInputUnavailable checks if an error is an unavailable input error
func IsInputUnavailable(err error) bool {
	return errors.Is(err, ErrInputUnavailable)
}

// IsRegistrationNotFound checks if an error is a missing registration construct
func IsRegistrationNotFound(err error) bool {
	return errors.Is(err, ErrRegistrationNotFound)
}

// IsMalformedRow checks if an error is a malformed row error
func IsMalformedRow(err error) bool {
	return errors.Is(err, ErrMalformedRow)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapInput wraps an error as an InputError
func WrapInput(input, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewInputError(input, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
