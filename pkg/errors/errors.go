// Package errors provides structured error types for srfactory.
//
// Every failure while loading a factory layout is reported as a single
// [*Error] carrying:
//   - A machine-readable [Code] naming the category of failure
//   - A human-readable message
//   - The JSON path of the offending node, when there is one
//   - An optional underlying cause
//
// # Error Codes
//
// Codes describe why a document was rejected:
//   - MALFORMED_SHAPE: wrong JSON type or missing required key
//   - DUPLICATE_KEY: repeated object key, or repeated id within one scope
//   - UNKNOWN_ITEM: item or raw item variant missing from the catalogue
//   - DANGLING_REFERENCE: id that does not resolve in its expected scope
//   - SELF_REFERENCE: a disallowed link back to the same entity
//   - TYPE_MISMATCH: a producer that supplies an item its consumer cannot use
//
// # Usage
//
//	err := errors.At(errors.ErrCodeMalformed, path, "missing 'purpose'")
//	if errors.Is(err, errors.ErrCodeMalformed) {
//	    fmt.Println(errors.PathString(err))
//	}
package errors

import (
	"errors"
	"fmt"

	"github.com/starrupture/srfactory/pkg/jsonpath"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Document errors
	ErrCodeInvalidJSON       Code = "INVALID_JSON"
	ErrCodeMalformed         Code = "MALFORMED_SHAPE"
	ErrCodeDuplicateKey      Code = "DUPLICATE_KEY"
	ErrCodeUnknownItem       Code = "UNKNOWN_ITEM"
	ErrCodeDanglingReference Code = "DANGLING_REFERENCE"
	ErrCodeSelfReference     Code = "SELF_REFERENCE"
	ErrCodeTypeMismatch      Code = "TYPE_MISMATCH"

	// Environment errors
	ErrCodeInvalidCatalogue Code = "INVALID_CATALOGUE"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidRequest   Code = "INVALID_REQUEST"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code, an optional JSON path and an
// optional cause.
type Error struct {
	Code    Code           // Machine-readable error code
	Message string         // Human-readable message
	Path    *jsonpath.Path // Location in the document (optional)
	Cause   error          // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// At creates a new Error attributed to a location in the document.
func At(code Code, path *jsonpath.Path, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// PathString returns the rendered JSON path of the first *Error in the chain
// that has one, or "" if none does.
func PathString(err error) string {
	return pathOf(err).String()
}

// PathSegments returns the JSON path segments of the first *Error in the
// chain that has a path. The result is empty, never nil.
func PathSegments(err error) []string {
	return pathOf(err).Segments()
}

func pathOf(err error) *jsonpath.Path {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return nil
		}
		if e.Path != nil {
			return e.Path
		}
		err = e.Cause
	}
	return nil
}
