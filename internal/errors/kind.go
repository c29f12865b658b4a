// Package errors classifies and reports the failures of a volume-notify invocation.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure. Every kind is fatal for the invocation.
type Kind int

const (
	// KindUnknown is used for errors that were never classified.
	KindUnknown Kind = iota
	// KindUsage covers unknown tasks and invalid flag values.
	KindUsage
	// KindSubprocess covers launch failures and non-zero exits of external tools.
	KindSubprocess
	// KindDecode covers subprocess output that is not valid text.
	KindDecode
	// KindParse covers malformed volume reports, notification ids and record contents.
	KindParse
	// KindIO covers opening, locking, reading and writing the record.
	KindIO
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindSubprocess:
		return "subprocess"
	case KindDecode:
		return "decode"
	case KindParse:
		return "parse"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Op names the step that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind and operation. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Usage builds a usage error from a format string.
func Usage(format string, args ...any) error {
	return &Error{Kind: KindUsage, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
