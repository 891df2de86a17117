package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios. The conflict family covers
// everyday front-desk outcomes (second scan the same day, double
// check-out), which callers must be able to tell apart from failures.
var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrNotRegistered      = New("NOT_REGISTERED", http.StatusNotFound, "student not registered")
	ErrDuplicateScan      = New("DUPLICATE_SCAN", http.StatusConflict, "already scanned today")
	ErrAlreadyActive      = New("ALREADY_ACTIVE", http.StatusConflict, "visitor with this CNIC is already checked in")
	ErrAlreadyCheckedOut  = New("ALREADY_CHECKED_OUT", http.StatusConflict, "visitor already checked out")
	ErrInvalidAmount      = New("INVALID_AMOUNT", http.StatusBadRequest, "amount must be a positive number")
	ErrInvalidFineType    = New("INVALID_FINE_TYPE", http.StatusBadRequest, "unrecognized fine type")
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
