// Package errors defines the structured diagnostic type used across the
// parser, interpreter and CLI layers of cold.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a ColdError by failure mode and prefixes its message.
// The CLI exits with status 1 for every kind, and the search driver prunes
// on the interpreter's Status, not on Kind.
type Kind int

const (
	// ParseError signals a malformed .solve, .pattern or .cold file.
	ParseError Kind = iota
	// TypeError signals an operand-tag mismatch or unsupported opcode
	// combination discovered while interpreting.
	TypeError
	// IOError signals a failure to open, read or write a file.
	IOError
	// ThreadError signals a failure to launch or join a worker.
	ThreadError
	// PrecisionError signals a precision-tag mismatch during compare.
	PrecisionError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case TypeError:
		return "type error"
	case IOError:
		return "io error"
	case ThreadError:
		return "thread error"
	case PrecisionError:
		return "precision error"
	default:
		return "error"
	}
}

// Location pins a diagnostic to a position in a source file, when known.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" {
		return ""
	}
	if l.Line <= 0 {
		return l.File
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// ColdError is the structured error type threaded through cold's layers. It
// carries enough context to print a useful diagnostic without needing the
// caller to inspect an error chain.
type ColdError struct {
	Kind     Kind
	Message  string
	Location Location
	Cause    error
}

func (e *ColdError) Error() string {
	loc := e.Location.String()
	if loc != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s (%s): %v", e.Kind, e.Message, loc, e.Cause)
		}
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, loc)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ColdError) Unwrap() error {
	return e.Cause
}

// New builds a ColdError with no location or cause attached.
func New(kind Kind, message string) *ColdError {
	return &ColdError{Kind: kind, Message: message}
}

// Newf is New with fmt-style formatting.
func Newf(kind Kind, format string, args ...any) *ColdError {
	return &ColdError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithLocation attaches a source location and returns the receiver for
// chaining at the call site.
func (e *ColdError) WithLocation(file string, line int) *ColdError {
	e.Location = Location{File: file, Line: line}
	return e
}

// WithCause wraps an underlying error using github.com/pkg/errors so a stack
// trace is captured the first time a foreign error enters cold's diagnostic
// type.
func (e *ColdError) WithCause(cause error) *ColdError {
	if cause != nil {
		e.Cause = errors.WithStack(cause)
	}
	return e
}

// Wrap lifts a plain error into a ColdError of the given kind, preserving
// its stack via pkg/errors.
func Wrap(kind Kind, message string, cause error) *ColdError {
	return New(kind, message).WithCause(cause)
}
