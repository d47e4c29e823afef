// Package errs defines the error taxonomy shared by movieshelf packages.
//
// Three kinds of failure exist:
//   - ValidationError: bad user input (empty name, year out of range, missing genre)
//   - IOError: a path could not be read or written
//   - ParseError: file content could not be decoded into movies
//
// Each typed error reports its kind through errors.Is, so callers can write
//
//	if errors.Is(err, errs.ErrNotFound) {
//	    // the file does not exist
//	}
//
// without caring which package produced the error.
package errs

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel kinds.
var (
	// ErrValidation indicates rejected user input.
	ErrValidation = errors.New("validation failed")

	// ErrIO indicates a file could not be read or written.
	ErrIO = errors.New("i/o failure")

	// ErrNotFound indicates the requested file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrParse indicates malformed file content.
	ErrParse = errors.New("malformed content")
)

// ValidationError represents a rejected input field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return "invalid input: " + e.Message
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IOError wraps a file system failure with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: i/o failure", e.Op, e.Path)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. A missing file also matches ErrNotFound.
func (e *IOError) Is(target error) bool {
	switch target {
	case ErrIO:
		return true
	case ErrNotFound:
		return errors.Is(e.Err, fs.ErrNotExist)
	}
	return false
}

// NewIOError creates a new IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// ParseError reports content that could not be decoded.
// Line is 1-based and zero when the format has no notion of lines.
type ParseError struct {
	Format  string
	Path    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if loc == "" {
		return fmt.Sprintf("parse %s: %s", e.Format, msg)
	}
	return fmt.Sprintf("parse %s %s: %s", e.Format, loc, msg)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Kind classifies an error into one of the sentinel kinds.
// A parse error wrapping a rejected field is still a parse error, and
// ErrNotFound is reported in preference to ErrIO. Unknown errors map to nil.
func Kind(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrParse):
		return ErrParse
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrIO):
		return ErrIO
	}
	return nil
}
