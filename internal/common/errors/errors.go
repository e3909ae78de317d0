// Package errors provides the standardized error taxonomy of the submission pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrCodeMethodNotAllowed    ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeDuplicateSubscriber ErrorCode = "DUPLICATE_SUBSCRIBER"
	ErrCodeStorageUnavailable  ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeStorageWriteFailed  ErrorCode = "STORAGE_WRITE_FAILED"
	ErrCodeTransportFailed     ErrorCode = "TRANSPORT_FAILED"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// GenericStorageMessage is the only storage-related text a submitter ever sees.
const GenericStorageMessage = "An error occurred processing your request"

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Fields    map[string]string      `json:"fields,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying driver or transport error.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidJSONError is returned when the request body is empty or not a JSON object.
func NewInvalidJSONError(err error) *StandardError {
	details := "empty body"
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid JSON input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidInputError carries the field->message map produced by server-side validation.
func NewInvalidInputError(message string, fields map[string]string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   message,
		Fields:    fields,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("method: %s", method),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDuplicateSubscriberError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateSubscriber,
		Message:   "This email is already subscribed",
		Details:   errorDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewStorageUnavailableError is returned when no connection to the store could be acquired.
func NewStorageUnavailableError(store string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   GenericStorageMessage,
		Details:   fmt.Sprintf("store: %s, error: %s", store, errorDetails(err)),
		Retryable: true,
		Metadata:  map[string]interface{}{"store": store},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewStorageWriteFailedError is returned when the insert itself fails.
func NewStorageWriteFailedError(store string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageWriteFailed,
		Message:   GenericStorageMessage,
		Details:   fmt.Sprintf("store: %s, error: %s", store, errorDetails(err)),
		Retryable: true,
		Metadata:  map[string]interface{}{"store": store},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewTransportError describes a client-side submission that never produced a usable response.
func NewTransportError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportFailed,
		Message:   "Unable to reach the server",
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, errorDetails(err)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func errorDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 3. Utility Functions
// ==========================

// From returns err as a *StandardError, wrapping unknown errors as INTERNAL_ERROR.
func From(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   GenericStorageMessage,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// CodeOf returns the error code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	return From(err).Code
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// HTTPStatus maps an error code to the response status of an endpoint handler.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeDuplicateSubscriber:
		return http.StatusConflict
	case ErrCodeTransportFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the text safe to show a submitter.
func ClientMessage(err *StandardError) string {
	switch err.Code {
	case ErrCodeStorageUnavailable, ErrCodeStorageWriteFailed, ErrCodeInternal:
		return GenericStorageMessage
	default:
		return err.Message
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INPUT"):
		return "INPUT"
	case strings.Contains(codeStr, "DUPLICATE"):
		return "CONFLICT"
	case strings.Contains(codeStr, "METHOD"):
		return "METHOD"
	case strings.Contains(codeStr, "STORAGE"):
		return "STORAGE"
	case strings.Contains(codeStr, "TRANSPORT"):
		return "TRANSPORT"
	default:
		return "OTHER"
	}
}
