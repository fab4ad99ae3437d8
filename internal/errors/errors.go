// internal/errors/errors.go
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a failure surfaced at the library boundary
type Kind string

const (
	InvalidArgument Kind = "InvalidArgument"
	TypeMismatch    Kind = "TypeMismatch"
	IndexOutOfRange Kind = "IndexOutOfRange"
	Unsupported     Kind = "Unsupported"
	OutOfMemory     Kind = "OutOfMemory"
	OsError         Kind = "OsError"
	NotFound        Kind = "NotFound"
	Layout          Kind = "Layout"
)

// Error carries the failure kind, the operation that failed, and an
// optional underlying cause
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the cause chain to errors.Is/As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error of the given kind
func New(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause to a new error of the given kind
func Wrap(cause error, kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: pkgerrors.WithStack(cause)}
}

// NewInvalidArgument creates an InvalidArgument error
func NewInvalidArgument(op, format string, args ...interface{}) *Error {
	return New(InvalidArgument, op, format, args...)
}

// NewTypeMismatch creates a TypeMismatch error
func NewTypeMismatch(op, format string, args ...interface{}) *Error {
	return New(TypeMismatch, op, format, args...)
}

// NewIndexOutOfRange creates an IndexOutOfRange error
func NewIndexOutOfRange(op string, index, count int) *Error {
	return New(IndexOutOfRange, op, "index %d out of range for length %d", index, count)
}

// NewUnsupported creates an Unsupported error
func NewUnsupported(op, format string, args ...interface{}) *Error {
	return New(Unsupported, op, format, args...)
}

// NewOutOfMemory creates an OutOfMemory error
func NewOutOfMemory(op, format string, args ...interface{}) *Error {
	return New(OutOfMemory, op, format, args...)
}

// NewNotFound creates a NotFound error
func NewNotFound(op, format string, args ...interface{}) *Error {
	return New(NotFound, op, format, args...)
}

// NewLayout reports an unknown variant tag; indicates corruption
func NewLayout(op string, tag interface{}) *Error {
	return New(Layout, op, "unknown layout variant %T", tag)
}

// KindOf extracts the Kind from an error, or "" for foreign errors
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a boundary error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
