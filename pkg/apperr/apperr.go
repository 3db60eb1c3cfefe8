// Package apperr carries the RouteResult error model (spec §7) through the
// core: a status code plus a human message, wrapping whatever underlying
// error (SQLite, decode, search) actually triggered it.
package apperr

import (
	"errors"
	"fmt"
)

// Status mirrors RouteResult.status.
type Status int

const (
	OK Status = iota
	NoRoute
	NoTile
	DataError
	InternalError
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case NoRoute:
		return "NO_ROUTE"
	case NoTile:
		return "NO_TILE"
	case DataError:
		return "DATA_ERROR"
	case InternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Error is the wrapped error type populating RouteResult on failure.
type Error struct {
	status Status
	msg    string
	orig   error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.orig)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Status() Status {
	return e.status
}

// Wrapf builds an *Error carrying status, a formatted message, and the
// original error that triggered it (may be nil).
func Wrapf(status Status, orig error, format string, a ...interface{}) error {
	return &Error{
		status: status,
		orig:   orig,
		msg:    fmt.Sprintf(format, a...),
	}
}

// New builds an *Error with no wrapped cause.
func New(status Status, format string, a ...interface{}) error {
	return Wrapf(status, nil, format, a...)
}

// StatusOf extracts the Status from err, defaulting to InternalError for
// any error not produced by this package (an invariant violation deeper in
// the call stack that nobody classified).
func StatusOf(err error) Status {
	if err == nil {
		return OK
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.status
	}
	return InternalError
}
