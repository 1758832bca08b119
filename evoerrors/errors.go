// Package evoerrors provides structured error types for evoschema.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - MalformedInputError: schema documents that violate the minimal-dialect
//     structural assumptions (e.g., "properties" is not a mapping)
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	node, err := schema.Parse(data)
//	if errors.Is(err, evoerrors.ErrMalformedInput) {
//	    // Skip this document and continue with the next one
//	}
package evoerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformedInput indicates a schema document violated the minimal
	// dialect's structural assumptions.
	ErrMalformedInput = errors.New("malformed input")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// MalformedInputError represents a schema document that does not satisfy the
// minimal dialect's structural assumptions. It is surfaced to the caller and
// never recovered internally; callers decide whether to skip or abort.
type MalformedInputError struct {
	// Path is the tree path to the offending node ("" for the root)
	Path string
	// Field is the schema keyword with the issue (e.g., "properties", "items")
	Field string
	// Message describes the structural violation
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedInputError) Error() string {
	msg := "malformed input"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// ConfigError represents an invalid configuration or option combination.
type ConfigError struct {
	// Option is the option name with the issue (empty if general)
	Option string
	// Message describes the configuration problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += fmt.Sprintf(": option %q", e.Option)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewMalformedInput creates a MalformedInputError for the given path and field.
func NewMalformedInput(path, field, message string) *MalformedInputError {
	return &MalformedInputError{Path: path, Field: field, Message: message}
}

// NewConfig creates a ConfigError for the given option.
func NewConfig(option, message string) *ConfigError {
	return &ConfigError{Option: option, Message: message}
}
