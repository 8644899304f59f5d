// Package errors defines the stable error and warning codes used across the
// grouping engine. Only MappingInvariant aborts an analysis run; every other
// code is a non-fatal condition surfaced through the run's warnings list.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseFailure indicates a file's syntax could not be parsed.
	// Non-fatal: the file is treated as having zero extracted references.
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// AmbiguousReference indicates an import resolved to multiple scanned files.
	// Non-fatal: the reference is treated as external.
	AmbiguousReference ErrorCode = "AMBIGUOUS_REFERENCE"
	// EmptyGroup indicates a resolved group lost all its files to higher
	// priority groups and was dropped.
	EmptyGroup ErrorCode = "EMPTY_GROUP"
	// StaleFile indicates a scanned file no longer exists on disk at
	// validation time.
	StaleFile ErrorCode = "STALE_FILE"
	// MappingInvariant indicates the file-to-group index does not cover the
	// validated file set exactly once. Fatal: the run produces no manifest.
	MappingInvariant ErrorCode = "MAPPING_INVARIANT"
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// StorageFailure indicates the snapshot store could not be read or written
	StorageFailure ErrorCode = "STORAGE_FAILURE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// GrouperError represents an engine error with a stable code
type GrouperError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new GrouperError
func New(code ErrorCode, message string, cause error) *GrouperError {
	return &GrouperError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *GrouperError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GrouperError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *GrouperError) WithDetails(details interface{}) *GrouperError {
	e.Details = details
	return e
}

// IsFatal reports whether the code aborts the current analysis run
func IsFatal(code ErrorCode) bool {
	switch code {
	case MappingInvariant, ConfigInvalid, StorageFailure, InternalError:
		return true
	default:
		return false
	}
}
