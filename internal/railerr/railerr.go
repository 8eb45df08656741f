// Package railerr defines the error kinds produced while loading and
// querying the rail dataset: invalid-data, io, short-input, and
// (at the façade) bad-request.
package railerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a rail-data error.
type Kind int

const (
	// InvalidData covers malformed records and unknown-reference
	// failures (alias targets, fixed-link CRS codes).
	InvalidData Kind = iota
	// IO covers filesystem/stream failures, propagated verbatim.
	IO
	// ShortInput covers EOF inside an open MCA service record.
	ShortInput
	// BadRequest covers façade-level input errors (unparseable time,
	// unknown CRS). Never produced by the parsers or the core engine.
	BadRequest
)

func (k Kind) String() string {
	switch k {
	case InvalidData:
		return "invalid-data"
	case IO:
		return "io"
	case ShortInput:
		return "short-input"
	case BadRequest:
		return "bad-request"
	default:
		return "unknown"
	}
}

// Error is a rail-data error, optionally anchored to a source line.
type Error struct {
	Kind Kind
	Line int // 0 when not applicable
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.msg)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// InvalidDataf builds a line-anchored invalid-data error.
func InvalidDataf(line int, format string, args ...interface{}) error {
	return &Error{Kind: InvalidData, Line: line, msg: fmt.Sprintf(format, args...)}
}

// ShortInputf builds a short-input (premature EOF) error.
func ShortInputf(format string, args ...interface{}) error {
	return &Error{Kind: ShortInput, msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates a lower-level error (typically filesystem I/O) as an
// IO-kind rail error, preserving the original via Unwrap.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: IO, msg: errors.Wrap(err, context).Error(), err: err}
}

// BadRequestf builds a façade-level bad-request error.
func BadRequestf(format string, args ...interface{}) error {
	return &Error{Kind: BadRequest, msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
