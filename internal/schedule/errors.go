package schedule

import (
	"errors"
	"fmt"
)

// Kind classifies schedule errors.
type Kind int

const (
	// KindRead means the backing file could not be opened or read.
	KindRead Kind = iota
	// KindParse means a record could not be parsed.
	KindParse
	// KindEmpty means the file held no records.
	KindEmpty
	// KindWrite means the file could not be opened for writing or a record failed to serialize.
	KindWrite
	// KindRange means a strict save addressed a cell outside the table.
	KindRange
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindParse:
		return "parse"
	case KindEmpty:
		return "empty"
	case KindWrite:
		return "write"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

var (
	// ErrEmpty is returned when the schedule file contains no records.
	ErrEmpty = errors.New("CSV is empty")
	// ErrOutOfRange is returned by strict saves that address a missing cell.
	ErrOutOfRange = errors.New("cell out of range")
)

// Error is returned by all schedule operations.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmpty, KindRange:
		return e.Err.Error()
	default:
		return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a schedule *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

func newError(kind Kind, path string, err error) error {
	return &Error{Kind: kind, Path: path, Err: err}
}
