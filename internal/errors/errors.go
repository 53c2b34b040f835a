package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// PathOutsideRoot indicates a path handed to the name resolver is not under the project root
	PathOutsideRoot ErrorCode = "PATH_OUTSIDE_ROOT"
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// ConfigInvalid indicates the configuration file could not be loaded or validated
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ExportFailed indicates a snapshot or graph description could not be written
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// RendererUnavailable indicates the external graph rendering tool is missing or failed
	RendererUnavailable ErrorCode = "RENDERER_UNAVAILABLE"
	// HistoryUnavailable indicates the scan history store could not be opened
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// ScanError is the error type surfaced by pydeps internals.
// It carries a stable code so callers can react without string matching.
type ScanError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// New creates a ScanError with the given code and message
func New(code ErrorCode, message string) *ScanError {
	return &ScanError{Code: code, Message: message}
}

// Wrap creates a ScanError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *ScanError {
	return &ScanError{Code: code, Message: message, Cause: cause}
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// CodeOf extracts the error code from an error chain.
// Returns InternalError for errors that are not ScanErrors.
func CodeOf(err error) ErrorCode {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Code
	}
	return InternalError
}
