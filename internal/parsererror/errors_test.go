package parsererror

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name:     "amount parse error",
			err:      &ParseError{Line: 7, Field: "amount", Value: "abc", Err: errors.New("can't convert abc to decimal")},
			expected: "line 7: failed to parse amount='abc': can't convert abc to decimal",
		},
		{
			name:     "parse error with empty value",
			err:      &ParseError{Line: 1, Field: "date", Value: "", Err: errors.New("empty date")},
			expected: "line 1: failed to parse date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{FilePath: "/tmp/x.tsv", Reason: "file not found", Err: os.ErrNotExist}
	assert.Contains(t, err.Error(), "validation failed for /tmp/x.tsv: file not found")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	plain := &ValidationError{FilePath: "a.tsv", Reason: "file is empty"}
	assert.Equal(t, "validation failed for a.tsv: file is empty", plain.Error())
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		FilePath:       "export.tsv",
		ExpectedFormat: "5 tab-separated columns",
		Err:            ErrMalformedHeader,
	}
	assert.True(t, errors.Is(err, ErrMalformedHeader))
	assert.Equal(t,
		"invalid format in file 'export.tsv': header line does not contain expected number of columns. Expected: 5 tab-separated columns",
		err.Error())

	withSnippet := &InvalidFormatError{FilePath: "f", ExpectedFormat: "x", ActualContentSnippet: "abc", Err: ErrHeaderNotFound}
	assert.Contains(t, withSnippet.Error(), "Content snippet: 'abc'")
}

func TestResolutionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ResolutionError{Reference: "5012345678", Err: cause}
	assert.Equal(t, "error looking up account for product 5012345678: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestInvariantError(t *testing.T) {
	err := &InvariantError{Type: "transfer", SourceID: "3", DestinationID: "3", Description: "move", Amount: "10.00", Err: ErrSameAccount}
	assert.True(t, errors.Is(err, ErrSameAccount))

	var target *InvariantError
	assert.True(t, errors.As(error(err), &target))
	assert.Equal(t, "3", target.SourceID)
	assert.Contains(t, err.Error(), `source="3" destination="3"`)
}
