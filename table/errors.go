package table

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors returned by a Table.
type ErrorKind uint8

// Error kinds.
const (
	// UnsupportedOperation is returned for DOM inputs and outputs.
	UnsupportedOperation ErrorKind = iota + 1
	// UnknownKind is returned for inputs and outputs with an invalid kind tag.
	UnknownKind
	// MappingFailure is returned when the serializer fails to map between records and text.
	MappingFailure
	// IndexOutOfBounds is returned when accessing a record that does not exist.
	IndexOutOfBounds
)

// Sentinels matching the error kinds with errors.Is.
var (
	ErrUnsupportedOperation = errors.New("table: unsupported operation")
	ErrUnknownKind          = errors.New("table: unknown io kind")
	ErrMappingFailure       = errors.New("table: mapping failure")
	ErrIndexOutOfBounds     = errors.New("table: index out of bounds")

	// ErrNoSerializer is returned by New if no serializer could be created.
	ErrNoSerializer = errors.New("table: no serializer")
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedOperation:
		return "unsupported"
	case UnknownKind:
		return "unknown-kind"
	case MappingFailure:
		return "mapping"
	case IndexOutOfBounds:
		return "out-of-bounds"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case UnsupportedOperation:
		return ErrUnsupportedOperation
	case UnknownKind:
		return ErrUnknownKind
	case MappingFailure:
		return ErrMappingFailure
	case IndexOutOfBounds:
		return ErrIndexOutOfBounds
	default:
		return nil
	}
}

// Error is the error type returned by Table operations.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("table: %s: %s", e.Op, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

func newError(kind ErrorKind, op, msg string, err error) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Msg:  msg,
		Err:  err,
	}
}
