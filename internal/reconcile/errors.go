package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/pantryledger/pantry/internal/storage"
)

// Error kinds. Every error returned by the Engine matches exactly one of
// these with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrTransaction  = errors.New("transaction failed")
)

// Error carries the kind of failure plus enough context for a caller to
// decide whether to retry or report it.
type Error struct {
	Kind   error
	Entity string
	ID     string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Entity != "" {
		msg += ": " + e.Entity
		if e.ID != "" {
			msg += " " + e.ID
		}
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether resubmitting the same call may succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransaction)
}

func notFound(entity, id string) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

func forbidden(entity, id string) error {
	return &Error{Kind: ErrForbidden, Entity: entity, ID: id, Reason: "owned by another user"}
}

func invalid(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Reason: fmt.Sprintf(format, args...)}
}

func conflict(entity, id, reason string) error {
	return &Error{Kind: ErrConflict, Entity: entity, ID: id, Reason: reason}
}

// classify turns whatever came out of a unit of work into an *Error.
// Errors already classified pass through; a missing row is NotFound and
// anything else the store reports is a transaction failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, storage.ErrNotFound) {
		return &Error{Kind: ErrNotFound, Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: ErrTransaction, Reason: "request cancelled", Err: err}
	}
	return &Error{Kind: ErrTransaction, Err: err}
}
