package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes rendered in the "error" field of failure responses.
const (
	CodeValidation         = "VALIDATION_FAILED"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeLicenseTaken       = "LICENSE_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNoToken            = "NO_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeRequestRejected    = "REQUEST_REJECTED"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

// NewMissingFields reports required request fields that were absent or blank.
func NewMissingFields(fields []string) error {
	return NewDomainError(CodeMissingFields,
		"missing required fields: "+strings.Join(fields, ", "),
		http.StatusBadRequest,
		map[string]any{"fields": fields})
}

// NewConflict reports a uniqueness violation. The wire contract renders
// conflicts as 400 alongside validation failures.
func NewConflict(code, message string, err error) error {
	return &DomainError{Code: code, Message: message, HTTPStatus: http.StatusBadRequest, Err: err}
}

// NewAuthError reports a failed login. cause stays internal.
func NewAuthError(cause error) error {
	return &DomainError{
		Code:       CodeInvalidCredentials,
		Message:    "invalid email or password",
		HTTPStatus: http.StatusUnauthorized,
		Err:        cause,
	}
}

func NewUnauthorized(code, message string) error {
	return NewDomainError(code, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewTooManyRequests(message string) error {
	return NewDomainError(CodeRateLimited, message, http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Anything unrecognised
// is treated as an internal failure.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
