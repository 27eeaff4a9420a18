package csvimport

import (
	"errors"
	"fmt"
)

// Row-level error codes surfaced to API clients.
const (
	ErrCodeRequiredField   = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidValue    = "ERR_IMPORT_INVALID_VALUE"
	ErrCodeMalformedRow    = "ERR_IMPORT_MALFORMED_ROW"
	ErrCodeDuplicateInFile = "ERR_IMPORT_DUPLICATE_IN_FILE"
	ErrCodeDuplicateInDB   = "ERR_IMPORT_DUPLICATE_IN_DB"
)

var (
	// ErrEmptyFile is returned when the uploaded file has no content.
	ErrEmptyFile = errors.New("import file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("import file is not valid UTF-8")

	// ErrMissingHeader is returned when the file has no header row.
	ErrMissingHeader = errors.New("import file is missing a header row")

	// ErrTooManyRows is returned once the row cap is exceeded.
	ErrTooManyRows = errors.New("import file has too many rows")
)

// RowError describes a problem with one row of the file.
type RowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %q: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ErrorCollection gathers row errors up to a cap while still counting the
// overflow, so a file full of bad rows produces a bounded response.
type ErrorCollection struct {
	errors []RowError
	cap    int
	total  int
}

// NewErrorCollection creates a collection keeping at most max errors.
func NewErrorCollection(max int) *ErrorCollection {
	if max <= 0 {
		max = 100
	}
	return &ErrorCollection{errors: make([]RowError, 0, max), cap: max}
}

// Add records a row error.
func (ec *ErrorCollection) Add(err RowError) {
	ec.total++
	if len(ec.errors) < ec.cap {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequired records a missing required field for a row.
func (ec *ErrorCollection) AddRequired(line int, column string) {
	ec.Add(RowError{
		Line:    line,
		Column:  column,
		Code:    ErrCodeRequiredField,
		Message: fmt.Sprintf("field %q is required", column),
	})
}

// AddInvalid records a field whose value was rejected.
func (ec *ErrorCollection) AddInvalid(line int, column, message, value string) {
	ec.Add(RowError{
		Line:    line,
		Column:  column,
		Code:    ErrCodeInvalidValue,
		Message: message,
		Value:   value,
	})
}

// AddDuplicate records a row that collides with an earlier row or an existing
// record.
func (ec *ErrorCollection) AddDuplicate(line int, column, code, value string) {
	ec.Add(RowError{
		Line:    line,
		Column:  column,
		Code:    code,
		Message: "duplicate value",
		Value:   value,
	})
}

// Errors returns the retained row errors.
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// Total returns how many errors were recorded, including any past the cap.
func (ec *ErrorCollection) Total() int {
	return ec.total
}

// HasErrors reports whether any error was recorded.
func (ec *ErrorCollection) HasErrors() bool {
	return ec.total > 0
}
