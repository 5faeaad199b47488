// Package apperr defines the error taxonomy shared by the persistence,
// credential and media layers. Handlers translate codes to HTTP statuses.
package apperr

import (
	"fmt"

	errors "github.com/Laisky/errors/v2"
)

// Repository-level sentinels. Services translate them into typed errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Code identifies a machine-stable error kind.
type Code string

const (
	CodeValidation   Code = "VALIDATION"
	CodeNotFound     Code = "NOT_FOUND"
	CodeUnauthorized Code = "UNAUTHORIZED"
)

// Error is a typed error whose Message is safe to show to API callers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "app error: <nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message == "" {
		return fmt.Sprintf("app error: %s", e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports missing/invalid input or a duplicate unique key.
func Validation(format string, args ...any) error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing record. It unwraps to ErrNotFound.
func NotFound(message string) error {
	return &Error{Code: CodeNotFound, Message: message, Err: ErrNotFound}
}

// Unauthorized reports rejected credentials.
func Unauthorized(message string) error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// AsError extracts a typed error from the error chain.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// IsCode reports whether the error chain contains a typed error with code.
func IsCode(err error, code Code) bool {
	if typed, ok := AsError(err); ok {
		return typed.Code == code
	}
	return false
}
