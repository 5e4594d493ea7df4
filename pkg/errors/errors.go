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

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Terminal generator outcomes surfaced to administrators. Transactional
// engine errors (cell occupied, faculty conflict, missing reservation)
// are recovered by backtracking and never reach this layer.
var (
	ErrInsufficientStations       = New("INSUFFICIENT_STATIONS", http.StatusUnprocessableEntity, "lab has fewer stations than batches")
	ErrRequirementExceedsCapacity = New("REQUIREMENT_EXCEEDS_CAPACITY", http.StatusUnprocessableEntity, "requirement exceeds open slots")
	ErrInfeasible                 = New("INFEASIBLE", http.StatusUnprocessableEntity, "no conflict-free assignment exists")
	ErrValidationFailed           = New("VALIDATION_FAILED", http.StatusConflict, "timetable failed conflict validation")
	ErrRequirementUnmet           = New("REQUIREMENT_UNMET", http.StatusConflict, "timetable does not satisfy weekly hours")
	ErrSearchAborted              = New("SEARCH_ABORTED", http.StatusServiceUnavailable, "generation gave up before proving infeasibility")
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
