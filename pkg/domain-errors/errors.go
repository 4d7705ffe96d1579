// Package domainerrors provides code-based errors for domain and service
// layers. Stores return sentinel errors (pkg/platform/sentinel); services
// translate them into coded errors; transports map codes onto their own
// status vocabulary without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for programmatic handling.
type Code string

const (
	// CodeValidation marks input that is structurally well-formed but
	// violates a domain rule (rating out of range, duplicate language).
	CodeValidation Code = "validation"
	// CodeBadRequest marks malformed input (unparseable body, bad id).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a missing profile or certification.
	CodeNotFound Code = "not_found"
	// CodeConflict marks an optimistic-version mismatch or uniqueness clash.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks an illegal state transition, such as
	// validating a certification that is already terminal.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeForbidden marks an operation the caller may not perform, such as
	// updating a field outside the allow-list.
	CodeForbidden Code = "forbidden"
	// CodeUnauthorized marks a missing or invalid admin credential.
	CodeUnauthorized Code = "unauthorized"
	// CodeUnavailable marks an external dependency failure (geocoder, index).
	CodeUnavailable Code = "unavailable"
	// CodeTimeout marks an external call that exceeded its bound.
	CodeTimeout Code = "timeout"
	// CodeInternal marks everything the caller cannot act on.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. It optionally wraps a cause so errors.Is and
// errors.As keep working through service boundaries.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. A nil err yields
// nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code onto an HTTP status for the transport layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvariantViolation:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeUnavailable:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
