package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an operational failure.
type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindAuthentication Kind = "AUTHENTICATION"
	KindAuthorization  Kind = "AUTHORIZATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindDuplicate      Kind = "DUPLICATE"
	KindRateLimit      Kind = "RATE_LIMIT"
	KindService        Kind = "SERVICE"
	KindInternal       Kind = "INTERNAL"
)

// HTTPStatusMap maps error kinds to HTTP status codes
var HTTPStatusMap = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindAuthentication: http.StatusUnauthorized,
	KindAuthorization:  http.StatusForbidden,
	KindNotFound:       http.StatusNotFound,
	KindDuplicate:      http.StatusConflict,
	KindRateLimit:      http.StatusTooManyRequests,
	KindService:        http.StatusServiceUnavailable,
	KindInternal:       http.StatusInternalServerError,
}

// Error is the single operational error type used across the service.
// Components raise it instead of writing responses themselves; the
// terminal error handler switches on Kind to produce the final envelope.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // field -> message, validation failures only
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP status code for this error
func (e *Error) HTTPStatus() int {
	if status, exists := HTTPStatusMap[e.Kind]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// Operational reports whether the error is safe to describe to a client.
func (e *Error) Operational() bool {
	return e.Kind != KindInternal
}

// New creates a new Error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a new Error with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Validation creates a 400 error carrying per-field messages
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Authentication creates a 401 error
func Authentication(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization creates a 403 error
func Authorization(message string) *Error {
	if message == "" {
		message = "Not authorized to perform this action"
	}
	return &Error{Kind: KindAuthorization, Message: message}
}

// NotFound creates a 404 error for a named resource
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Duplicate creates a 409 error
func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

// RateLimit creates a 429 error
func RateLimit(message string) *Error {
	if message == "" {
		message = "Too many requests"
	}
	return &Error{Kind: KindRateLimit, Message: message}
}

// Service creates a 503 error for an unavailable dependency
func Service(message string, cause error) *Error {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	return &Error{Kind: KindService, Message: message, Cause: cause}
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Envelope is the uniform JSON body for every failure response.
// Status is "fail" for client-caused 4xx and "error" for 5xx.
type Envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Stack   string            `json:"stack,omitempty"`
}

// StatusWord returns the envelope status keyword for an HTTP status code.
func StatusWord(status int) string {
	if status < http.StatusInternalServerError {
		return "fail"
	}
	return "error"
}

// NewEnvelope builds the failure envelope for a status code and message.
func NewEnvelope(status int, message string, fields map[string]string) Envelope {
	return Envelope{
		Status:  StatusWord(status),
		Message: message,
		Errors:  fields,
	}
}
