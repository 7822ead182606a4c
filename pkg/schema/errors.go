package schema

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
)

// Kind classifies every error the service reports
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindConflict
	KindIllegalState
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindIllegalState:
		return "illegal_state"
	case KindUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// Standard schema errors
var (
	// ErrInvalidArgument is returned when a request field is missing or malformed
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a referenced context, label, key or index does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the store rejects a create because the name is taken
	ErrConflict = errors.New("conflict")

	// ErrIllegalState is returned when an index action is not allowed from its current status
	ErrIllegalState = errors.New("illegal state")

	// ErrUnavailable is returned when the store or a readiness wait cannot complete
	ErrUnavailable = errors.New("unavailable")
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindIllegalState:
		return ErrIllegalState
	case KindUnavailable:
		return ErrUnavailable
	}
	return nil
}

// Error carries the kind of failure together with the operation and the
// schema object involved.
type Error struct {
	Kind     Kind
	Op       string
	Resource string
	Name     string
	Reason   string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Resource != "" {
		msg += fmt.Sprintf(" %s %q", e.Resource, e.Name)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	if s := e.Kind.sentinel(); s != nil && target == s {
		return true
	}
	return false
}

// NewInvalidArgumentError creates an InvalidArgument error
func NewInvalidArgumentError(op, reason string) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op, Reason: reason}
}

// NewNotFoundError creates a NotFound error for a schema object
func NewNotFoundError(op, resource, name string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Resource: resource, Name: name}
}

// NewConflictError creates a Conflict error for a schema object
func NewConflictError(op, resource, name string, cause error) *Error {
	return &Error{Kind: KindConflict, Op: op, Resource: resource, Name: name, Cause: cause}
}

// NewIllegalStateError creates an IllegalState error for an index
func NewIllegalStateError(op, index, reason string) *Error {
	return &Error{Kind: KindIllegalState, Op: op, Resource: "index", Name: index, Reason: reason}
}

// NewUnavailableError creates an Unavailable error
func NewUnavailableError(op string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Op: op, Cause: cause}
}

// KindOf returns the kind of the first classified error in err's chain
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	for _, k := range []Kind{KindInvalidArgument, KindNotFound, KindConflict, KindIllegalState, KindUnavailable} {
		if errors.Is(err, k.sentinel()) {
			return k
		}
	}
	return KindUnknown
}

// Retryable reports whether repeating the same call may succeed
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindUnavailable, KindConflict:
		return true
	}
	return false
}

// WrapError attaches an operation to a store error. Classified errors are
// returned as-is.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// GRPCCode maps an error kind to the gRPC status code returned to clients
func GRPCCode(k Kind) codes.Code {
	switch k {
	case KindInvalidArgument:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindConflict:
		return codes.AlreadyExists
	case KindIllegalState:
		return codes.FailedPrecondition
	case KindUnavailable:
		return codes.Unavailable
	}
	return codes.Internal
}
