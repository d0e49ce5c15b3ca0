// Package edaerr defines the error taxonomy shared by the loader, the column
// transforms and the chart renderers.
//
// Every failure surfaced by airbnb-eda is an *Error carrying one of three
// kinds. Callers match kinds with errors.Is against the package sentinels:
//
//	if errors.Is(err, edaerr.ErrFileNotFound) { ... }
package edaerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error.
type Kind string

const (
	KindFileNotFound    Kind = "file_not_found"
	KindParse           Kind = "parse"
	KindInvalidArgument Kind = "invalid_argument"
)

// Sentinels for errors.Is matching.
var (
	ErrFileNotFound    = &Error{Kind: KindFileNotFound, Message: "file not found"}
	ErrParse           = &Error{Kind: KindParse, Message: "parse error"}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
)

// NoRow marks an error that is not tied to a particular row.
const NoRow = -1

// Error is a classified airbnb-eda failure.
type Error struct {
	Kind    Kind
	Op      string
	Path    string
	Column  string
	Row     int
	Value   string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "unknown error"
	}

	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	var loc []string
	if e.Path != "" {
		loc = append(loc, "path="+e.Path)
	}
	if e.Column != "" {
		loc = append(loc, "column="+e.Column)
	}
	if e.Row >= 0 && e.Column != "" {
		loc = append(loc, fmt.Sprintf("row=%d", e.Row))
	}
	if e.Value != "" {
		loc = append(loc, fmt.Sprintf("value=%q", e.Value))
	}
	if len(loc) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(loc, " "))
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil {
		return false
	}
	return e.Kind == t.Kind
}

// FileNotFound creates a missing file error for path.
func FileNotFound(op, path string, cause error) *Error {
	return &Error{
		Kind:    KindFileNotFound,
		Op:      op,
		Path:    path,
		Row:     NoRow,
		Message: "file not found",
		Cause:   cause,
	}
}

// Parse creates a parse error. Row is NoRow when the failure is file level.
func Parse(op, column string, row int, value string, cause error) *Error {
	return &Error{
		Kind:    KindParse,
		Op:      op,
		Column:  column,
		Row:     row,
		Value:   value,
		Message: "cannot parse value",
		Cause:   cause,
	}
}

// ParseFile creates a parse error for a malformed file.
func ParseFile(op, path string, cause error) *Error {
	return &Error{
		Kind:    KindParse,
		Op:      op,
		Path:    path,
		Row:     NoRow,
		Message: "malformed delimited file",
		Cause:   cause,
	}
}

// InvalidArgument creates an argument validation error.
func InvalidArgument(op, format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Op:      op,
		Row:     NoRow,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
