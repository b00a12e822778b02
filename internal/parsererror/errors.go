// Package parsererror defines the typed errors produced by the statement
// parsers and surfaced through the ingestion engine.
package parsererror

import (
	"errors"
	"fmt"
)

// ParseError represents a failure while parsing a specific field or section.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError means the input does not conform to the structure the
// parser expects, e.g. no detectable header row in a statement.
type InvalidFormatError struct {
	File           string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.File, e.Msg, e.ExpectedFormat)
}

// DataExtractionError means the format was recognized but a required piece
// of data could not be extracted from it.
type DataExtractionError struct {
	File      string
	FieldName string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s",
		e.File, e.FieldName, e.Reason)
}

// ValidationError represents a validation failure on parsed output.
type ValidationError struct {
	File   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.File, e.Reason)
}

// PasswordRequiredError means an encrypted document was encountered and no
// password source was available to open it.
type PasswordRequiredError struct {
	File string
}

func (e *PasswordRequiredError) Error() string {
	return fmt.Sprintf("file '%s' is password protected", e.File)
}

// IncorrectPasswordError means the interactively supplied password was
// rejected. The single retry has already been consumed; this is terminal
// for the file.
type IncorrectPasswordError struct {
	File string
}

func (e *IncorrectPasswordError) Error() string {
	return fmt.Sprintf("incorrect password for file '%s'", e.File)
}

// UnsupportedFormatError marks a file whose extension no parser handles.
// The engine treats it as a warning, not a batch failure.
type UnsupportedFormatError struct {
	File      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type '%s' for file '%s'", e.Extension, e.File)
}

// IsIncorrectPassword reports whether err wraps an IncorrectPasswordError.
func IsIncorrectPassword(err error) bool {
	var target *IncorrectPasswordError
	return errors.As(err, &target)
}

// IsUnsupportedFormat reports whether err wraps an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}
