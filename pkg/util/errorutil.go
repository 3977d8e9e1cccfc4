package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for logging and metrics. They never appear in responses;
// the envelope carries only the numeric status and a human message.
const (
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidEndpoint    = "INVALID_ENDPOINT"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeStorageError       = "STORAGE_ERROR"
	CodeServerError        = "SERVER_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
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
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewMissingCredentials() error {
	return NewDomainError(CodeMissingCredentials, "Missing credentials", http.StatusBadRequest)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized)
}

func NewInvalidEndpoint() error {
	return NewDomainError(CodeInvalidEndpoint, "Invalid endpoint", http.StatusBadRequest)
}

func NewMissingFields() error {
	return NewDomainError(CodeMissingFields, "Missing required fields", http.StatusBadRequest)
}

func NewInvalidEmail() error {
	return NewDomainError(CodeInvalidEmail, "Invalid email format", http.StatusBadRequest)
}

func NewStorageError(message string, err error) error {
	return &DomainError{
		Code:       CodeStorageError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewServerError(err error) error {
	return &DomainError{
		Code:       CodeServerError,
		Message:    "Server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Anything not
// already typed collapses to the SERVER_ERROR catch-all.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeServerError,
		Message:    "Server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
