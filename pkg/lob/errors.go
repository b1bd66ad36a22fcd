package lob

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorCode is the category of a large object error.
type ErrorCode int

const (
	// ErrProtocol indicates a remote call failed for reasons opaque to this
	// layer (network faults, unexpected server errors).
	ErrProtocol ErrorCode = iota

	// ErrNotFound indicates the operation referenced a nonexistent object
	// identifier.
	ErrNotFound

	// ErrInvalidArgument indicates an offset or length was rejected locally,
	// before any remote call was issued.
	ErrInvalidArgument

	// ErrPermission indicates the server rejected the operation on this
	// descriptor, typically a write through a read-only handle.
	ErrPermission
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrProtocol:
		return "protocol"
	case ErrNotFound:
		return "not_found"
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrPermission:
		return "permission"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by all operations in this package.
type Error struct {
	// Code is the error category.
	Code ErrorCode

	// Op is the operation that failed (create, open, read, ...).
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lob %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("lob %s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the ErrorCode from err. Errors that did not originate in
// this package report ErrProtocol.
func CodeOf(err error) ErrorCode {
	var lobErr *Error
	if errors.As(err, &lobErr) {
		return lobErr.Code
	}
	return ErrProtocol
}

// PostgreSQL error codes surfaced by the lo_* call family.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	// 42704: undefined_object, raised when an OID names no large object.
	pgCodeUndefinedObject = "42704"

	// 42501: insufficient_privilege, raised by large object ACL checks.
	pgCodeInsufficientPrivilege = "42501"

	// 55000: object_not_in_prerequisite_state, raised when writing through a
	// descriptor that was not opened for writing.
	pgCodeObjectNotInPrerequisiteState = "55000"
)

// mapPgError translates an error returned by pgx into a typed *Error.
func mapPgError(err error, op string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUndefinedObject:
			return &Error{
				Code:    ErrNotFound,
				Op:      op,
				Message: "large object does not exist",
				Err:     err,
			}
		case pgCodeInsufficientPrivilege, pgCodeObjectNotInPrerequisiteState:
			return &Error{
				Code:    ErrPermission,
				Op:      op,
				Message: "operation not permitted on this descriptor",
				Err:     err,
			}
		}
	}

	return &Error{
		Code:    ErrProtocol,
		Op:      op,
		Message: "remote call failed",
		Err:     err,
	}
}

// errClosed is returned by operations on a handle after Close.
func errClosed(op string) error {
	return &Error{
		Code:    ErrInvalidArgument,
		Op:      op,
		Message: "large object is closed",
	}
}
