package utils

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies failures across the charge and notification flows.
type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "Unauthenticated"
	KindInvalidArgument    ErrorKind = "InvalidArgument"
	KindFailedPrecondition ErrorKind = "FailedPrecondition"
	KindNotFound           ErrorKind = "NotFound"
	KindInvalidSignature   ErrorKind = "InvalidSignature"
	KindMalformed          ErrorKind = "Malformed"
	KindInternal           ErrorKind = "Internal"
)

// AppError represents an application error
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(kind ErrorKind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// UnauthenticatedError creates a 401 error
func UnauthenticatedError(message string, err error) *AppError {
	return NewAppError(KindUnauthenticated, http.StatusUnauthorized, message, err)
}

// InvalidArgumentError creates a 400 error for malformed or missing request fields
func InvalidArgumentError(message string, err error) *AppError {
	return NewAppError(KindInvalidArgument, http.StatusBadRequest, message, err)
}

// FailedPreconditionError creates a 500 error for missing server configuration
func FailedPreconditionError(message string, err error) *AppError {
	return NewAppError(KindFailedPrecondition, http.StatusInternalServerError, message, err)
}

// NotFoundError creates a 404 error for an absent booking
func NotFoundError(message string, err error) *AppError {
	return NewAppError(KindNotFound, http.StatusNotFound, message, err)
}

// InvalidSignatureError creates a 403 error for a notification that failed
// the integrity check
func InvalidSignatureError(message string, err error) *AppError {
	return NewAppError(KindInvalidSignature, http.StatusForbidden, message, err)
}

// MalformedError creates a 400 error for an undecodable notification payload
func MalformedError(message string, err error) *AppError {
	return NewAppError(KindMalformed, http.StatusBadRequest, message, err)
}

// InternalError creates a 500 error for gateway contract violations and
// store unavailability
func InternalError(message string, err error) *AppError {
	return NewAppError(KindInternal, http.StatusInternalServerError, message, err)
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// IsKind checks whether an error is an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
