// Package errors provides structured error handling for the slate core.
package errors

import "fmt"

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindHandle indicates an invalid or foreign handle.
	KindHandle
	// KindDispatch indicates an event dispatch failure.
	KindDispatch
	// KindTransition indicates a style transition failure.
	KindTransition
	// KindPool indicates a dynamic style pool failure.
	KindPool
	// KindConfig indicates a configuration or style sheet parsing failure.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindDispatch:
		return "dispatch"
	case KindTransition:
		return "transition"
	case KindPool:
		return "pool"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the slate core.
type Error struct {
	// Op is the operation that failed (e.g., "styles.ParseSheet").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a structured error wrapping err.
func New(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Errorf creates a structured error from a format string.
func Errorf(op string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// PreconditionError reports an API-contract violation: an invalid handle, a
// nil callback, an out-of-range transition result, or similar programmer
// error. Precondition failures are raised before any state is mutated, so a
// caller that recovers observes unchanged state.
type PreconditionError struct {
	// Op is the operation whose precondition failed (e.g., "events.OnPress").
	Op string
	// Detail describes the violated contract.
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated in %s: %s", e.Op, e.Detail)
}

// Fail panics with a PreconditionError for the given operation. It is the
// single funnel for fatal assertions in the slate core; callers must check
// preconditions before mutating state so recovery leaves state intact.
func Fail(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
