// Package errs defines the uniform error taxonomy shared by every
// tensorcore subpackage: layout algebra, storage/device backends, the
// elementwise engine, and the matmul engine all fail through this type.
package errs

import "github.com/pkg/errors"

// Kind classifies a tensorcore error. Callers should switch on Kind (via
// errors.As into *Error) rather than matching error strings.
type Kind int

const (
	// InvalidLayout covers shape/stride inconsistencies, non-permutation
	// transposes, and non-contiguous reshapes.
	InvalidLayout Kind = iota
	// ValueOutOfRange is a reachable offset exceeding storage length.
	ValueOutOfRange
	// BroadcastIncompatible is a shape pair that cannot be broadcast.
	BroadcastIncompatible
	// DeviceMismatch is two operands living on non-equal devices.
	DeviceMismatch
	// UnsupportedOperation is a backend lacking a requested primitive.
	UnsupportedOperation
	// AliasingViolation is an output that aliases an input unsafely.
	AliasingViolation
	// BackendFailure wraps a backend-specific failure (pool construction,
	// BLAS error, CUDA driver error).
	BackendFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidLayout:
		return "InvalidLayout"
	case ValueOutOfRange:
		return "ValueOutOfRange"
	case BroadcastIncompatible:
		return "BroadcastIncompatible"
	case DeviceMismatch:
		return "DeviceMismatch"
	case UnsupportedOperation:
		return "UnsupportedOperation"
	case AliasingViolation:
		return "AliasingViolation"
	case BackendFailure:
		return "BackendFailure"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by tensorcore operations. It
// carries a Kind plus a human-readable message and composes with
// github.com/pkg/errors wrapping so callers further up the stack can still
// Wrap/Errorf without losing the Kind (errors.As unwraps through Cause).
type Error struct {
	Kind Kind
	msg  string
	// cause is the wrapped lower-level error, if any (e.g. a BLAS or CUDA
	// driver failure surfaced as BackendFailure).
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Kind.String() + ": " + e.msg + ": " + e.cause.Error()
	}
	return e.Kind.String() + ": " + e.msg
}

// Unwrap lets errors.Is/errors.As reach the wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, errs.New(errs.InvalidLayout, "")) works as a Kind check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error of the given Kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: errors.Errorf(format, args...).Error()}
}

// Wrap builds an Error of the given Kind that wraps cause, preserving the
// wrapped error's message chain via errors.Wrap's convention.
func Wrap(cause error, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: errors.Errorf(format, args...).Error(), cause: cause}
}

// Of reports whether err is a tensorcore *Error of the given Kind.
func Of(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
