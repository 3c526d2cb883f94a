// Package errors provides the standardized error taxonomy shared by the
// agentcore commands.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	ErrCodeControlPlaneLookupFailed ErrorCode = "CONTROL_PLANE_LOOKUP_FAILED"

	ErrCodeInvocationHTTPError     ErrorCode = "INVOCATION_HTTP_ERROR"
	ErrCodeInvocationRequestFailed ErrorCode = "INVOCATION_REQUEST_FAILED"
	ErrCodeInvocationTimeout       ErrorCode = "INVOCATION_TIMEOUT"
	ErrCodeRequestValidationFailed ErrorCode = "REQUEST_VALIDATION_FAILED"
	ErrCodeResponseDecodeFailed    ErrorCode = "RESPONSE_DECODE_FAILED"
	ErrCodeInternal                ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// HTTPError carries a non-2xx response exactly as the server sent it.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %s", status)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewConfigInvalidError reports a missing or placeholder configuration value.
// guidance is printed to the operator as-is.
func NewConfigInvalidError(message, guidance string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   message,
		Details:   guidance,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewControlPlaneLookupFailedError(runtimeID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeControlPlaneLookupFailed,
		Message:   "Agent runtime lookup failed",
		Details:   fmt.Sprintf("runtimeId: %s, error: %s", runtimeID, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"runtimeId": runtimeID},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvocationHTTPError(httpErr *HTTPError) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvocationHTTPError,
		Message:   "Agent invocation returned an error status",
		Details:   httpErr.Error(),
		Retryable: httpErr.StatusCode >= 500,
		Metadata:  map[string]interface{}{"statusCode": httpErr.StatusCode},
		Timestamp: time.Now().UTC(),
		cause:     httpErr,
	}
}

func NewInvocationRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvocationRequestFailed,
		Message:   "Agent invocation request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvocationTimeoutError(timeout time.Duration, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvocationTimeout,
		Message:   "Agent invocation timed out",
		Details:   fmt.Sprintf("no response within %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewRequestValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestValidationFailed,
		Message:   "Invocation payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewResponseDecodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseDecodeFailed,
		Message:   "Agent response is not valid JSON",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// CodeOf returns the error code carried by err, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return Normalize(err).Code
}

// AsHTTPError digs an HTTPError out of a wrapped chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// Is and As forward to the standard library so callers need a single
// errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// ExitCode maps a command result to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CONFIG"):
		return "CONFIG"
	case strings.HasPrefix(codeStr, "CONTROL_PLANE"):
		return "CONTROL_PLANE"
	case strings.Contains(codeStr, "DECODE") || strings.Contains(codeStr, "VALIDATION"):
		return "PAYLOAD"
	case strings.HasPrefix(codeStr, "INVOCATION"):
		return "INVOCATION"
	default:
		return "OTHER"
	}
}
