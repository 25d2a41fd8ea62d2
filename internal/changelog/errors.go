package changelog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fatal engine failures.
type ErrorKind int

const (
	// KindIO covers missing, unreadable or unwritable files.
	KindIO ErrorKind = iota
	// KindSchema covers invalid change types, dates, versions and messages.
	KindSchema
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "IOError"
	case KindSchema:
		return "SchemaError"
	default:
		return "Error"
	}
}

// Error is returned by operations that abort. Nothing has been written or
// mutated when an Error is returned.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

func schemaError(op string, err error) *Error {
	return &Error{Kind: KindSchema, Op: op, Err: err}
}

// IsIOError returns true if err is an engine error of kind KindIO.
func IsIOError(err error) bool {
	return isKind(err, KindIO)
}

// IsSchemaError returns true if err is an engine error of kind KindSchema.
func IsSchemaError(err error) bool {
	return isKind(err, KindSchema)
}

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
