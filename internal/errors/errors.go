package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind labels the category of a request failure.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindPayloadTooLarge  Kind = "payload_too_large"
	KindUnsupportedMedia Kind = "unsupported_media_type"
	KindUpstream         Kind = "upstream"
	KindTimeout          Kind = "timeout"
	KindInternal         Kind = "internal"
)

// AppError carries a failure category, a caller-safe message and the HTTP
// status it maps to. Cause is kept for logging and is never serialized.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Cause      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports malformed or out-of-range request fields.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewPayloadTooLargeError reports an upload exceeding the size ceiling.
func NewPayloadTooLargeError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindPayloadTooLarge,
		Message:    message,
		StatusCode: http.StatusRequestEntityTooLarge,
		Cause:      cause,
	}
}

// NewUnsupportedMediaError reports a buffer whose signature matches none of
// the accepted image formats.
func NewUnsupportedMediaError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindUnsupportedMedia,
		Message:    message,
		StatusCode: http.StatusUnsupportedMediaType,
		Cause:      cause,
	}
}

// NewUpstreamError reports a failed model call. The message must stay
// generic; the underlying upstream error belongs in Cause.
func NewUpstreamError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindUpstream,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewTimeoutError reports an upstream call that exceeded its deadline.
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewInternalError reports any other unexpected failure.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsKind checks whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetStatusCode extracts the HTTP status from an error, defaulting to 500.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
