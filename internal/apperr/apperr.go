// Package apperr defines the business error kinds the API reports to
// callers. Plumbing failures (SQL, network) stay plain wrapped errors;
// anything a client can act on is one of these kinds.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindPhaseViolation: the action is not permitted in the current phase.
	KindPhaseViolation Kind = iota + 1
	// KindPermissionDenied: the role lacks the capability.
	KindPermissionDenied
	// KindInvalidTransition: entity is not in the required source state.
	KindInvalidTransition
	// KindValidationError: missing or malformed business field.
	KindValidationError
	// KindNotFound: referenced entity does not exist.
	KindNotFound
	// KindConfigConflict: concurrent scoring-config update collision.
	// Retryable; the only kind retried internally.
	KindConfigConflict
)

func (k Kind) String() string {
	switch k {
	case KindPhaseViolation:
		return "phase_violation"
	case KindPermissionDenied:
		return "permission_denied"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindValidationError:
		return "validation_error"
	case KindNotFound:
		return "not_found"
	case KindConfigConflict:
		return "config_conflict"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or 0 if err is not an apperr.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
