// Package parsererror defines the typed errors raised while importing a
// ledger export.
package parsererror

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned when the input file has no lines.
	ErrEmptyFile = errors.New("file is empty")

	// ErrHeaderNotFound is returned when no line carries the header text.
	ErrHeaderNotFound = errors.New("could not find expected header line")

	// ErrMalformedHeader is returned when the header splits into the wrong
	// number of columns.
	ErrMalformedHeader = errors.New("header line does not contain expected number of columns")

	// ErrSameAccount marks a transaction whose source and destination match.
	ErrSameAccount = errors.New("source and destination account cannot be the same")
)

// ValidationError reports an input file that cannot be used at all.
type ValidationError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for %s: %s: %v", e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError reports a file that does not follow the expected layout.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %v. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Err, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %v. Expected: %s",
		e.FilePath, e.Err, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// ParseError reports a single field of a data row that could not be parsed.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: failed to parse %s='%s': %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ResolutionError reports a failed account lookup for one reference.
type ResolutionError struct {
	Reference string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("error looking up account for product %s: %v", e.Reference, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// InvariantError reports a transaction that must never be constructed.
type InvariantError struct {
	Type          string
	SourceID      string
	DestinationID string
	Description   string
	Amount        string
	Err           error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invalid %s transaction (%s, amount %s): source=%q destination=%q: %v",
		e.Type, e.Description, e.Amount, e.SourceID, e.DestinationID, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
