package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for assistant operations.
type ErrorCode string

const (
	// ErrCodeInputIncomplete indicates a reminder utterance is missing required fields.
	ErrCodeInputIncomplete ErrorCode = "INPUT_INCOMPLETE"
	// ErrCodeCapabilityUnavailable indicates speech recognition or synthesis is unavailable.
	ErrCodeCapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"
	// ErrCodeTransientIO indicates a retryable network or I/O failure.
	ErrCodeTransientIO ErrorCode = "TRANSIENT_IO"
	// ErrCodeNotFound indicates the requested reminder does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeLLMUnavailable indicates the completion service is not available.
	ErrCodeLLMUnavailable ErrorCode = "LLM_UNAVAILABLE"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// AssistError represents a structured error for assistant operations.
type AssistError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AssistError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AssistError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *AssistError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// InputIncomplete creates an input incomplete error.
func InputIncomplete(msg string) *AssistError {
	return &AssistError{Code: ErrCodeInputIncomplete, Message: msg}
}

// CapabilityUnavailable creates a capability unavailable error.
func CapabilityUnavailable(msg string) *AssistError {
	return &AssistError{Code: ErrCodeCapabilityUnavailable, Message: msg}
}

// TransientIO creates a transient I/O error.
func TransientIO(msg string, cause error) *AssistError {
	return &AssistError{Code: ErrCodeTransientIO, Message: msg, Cause: cause}
}

// NotFound creates a not found error.
func NotFound(resource string) *AssistError {
	return &AssistError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *AssistError {
	return &AssistError{Code: ErrCodeInvalidArgument, Message: msg}
}

// LLMUnavailable creates an LLM unavailable error.
func LLMUnavailable(msg string) *AssistError {
	return &AssistError{Code: ErrCodeLLMUnavailable, Message: msg}
}

// Timeout creates a timeout error.
func Timeout(msg string) *AssistError {
	return &AssistError{Code: ErrCodeTimeout, Message: msg}
}

// Wrap wraps an existing error with additional context.
func Wrap(cause error, code ErrorCode, msg string) *AssistError {
	return &AssistError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if assistErr, ok := err.(*AssistError); ok {
		return assistErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an AssistError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if assistErr, ok := err.(*AssistError); ok {
		return assistErr.Code
	}
	return defaultCode
}
