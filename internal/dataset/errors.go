package dataset

import (
	"errors"
	"fmt"
)

// Kind classifies request failures so the HTTP layer can map them to a
// status code and a stable machine-readable tag.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnsupportedFormat
	KindFileTooLarge
	KindParseError
	KindInvalidOperation
	KindTypeMismatch
	KindDivideByZero
	KindEmptySelection
	KindUnknownColumn
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindFileTooLarge:
		return "file_too_large"
	case KindParseError:
		return "parse_error"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindDivideByZero:
		return "divide_by_zero"
	case KindEmptySelection:
		return "empty_selection"
	case KindUnknownColumn:
		return "unknown_column"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Error is a kind-tagged error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a kind-tagged error from a format string.
func E(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error.
func Wrap(k Kind, err error, msg string) *Error {
	return &Error{Kind: k, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
