// Package errors defines the coded error type shared by stores, services and
// transports. Stores and services return *Error values (optionally wrapping an
// underlying cause); transports translate the Code into a caller-visible outcome.
//
// Import it as dErrors to avoid shadowing the standard library:
//
//	dErrors "smp/pkg/domain-errors"
package errors

import (
	"errors"
	"fmt"
)

// Code classifies a failure. Codes are stable strings so they can be logged
// and returned to clients verbatim.
type Code string

const (
	CodeValidation         Code = "validation_error"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeInvariantViolation Code = "invariant_violation"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeDuplicateBackend   Code = "duplicate_backend"
	CodeNotInitialized     Code = "not_initialized"
	CodeLocator            Code = "locator_error"
	CodeInconsistentState  Code = "inconsistent_state"
	CodeBackend            Code = "backend_error"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// CodeAlreadyExists is the name the registry contract uses for conflicts on
// create. It is the same code as CodeConflict.
const CodeAlreadyExists = CodeConflict

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode lets other error types in this module advertise a code; CodeOf
// and Is look for it along the whole chain.
func (e *Error) ErrorCode() Code {
	return e.Code
}

// New creates a coded error without a cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err. Wrapping a nil error returns nil so
// call sites can wrap unconditionally.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the outermost code found in err's chain, or CodeInternal when
// err carries no code.
func CodeOf(err error) Code {
	var coded interface{ ErrorCode() Code }
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return CodeInternal
}

// HasCode reports whether the outermost coded error in err's chain has code.
func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// Is reports whether any coded error in err's chain has code. Unlike HasCode
// it keeps looking past the outermost coded error.
func Is(err error, code Code) bool {
	for err != nil {
		if coded, ok := err.(interface{ ErrorCode() Code }); ok && coded.ErrorCode() == code {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if Is(inner, code) {
					return true
				}
			}
			return false
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		default:
			return false
		}
	}
	return false
}
