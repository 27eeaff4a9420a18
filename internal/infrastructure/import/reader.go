// Package csvimport reads customer CSV files for bulk import. Files must be
// UTF-8 encoded; a leading BOM is tolerated and stripped.
package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultMaxRows caps how many data rows a single import may carry.
const DefaultMaxRows = 5000

// Reader parses a CSV stream into header-keyed rows.
type Reader struct {
	reader    *csv.Reader
	headers   []string
	headerMap map[string]int
	row       int
	maxRows   int
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxRows overrides the data-row cap.
func WithMaxRows(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.maxRows = n
		}
	}
}

// NewReader wraps r, strips a UTF-8 BOM when present, validates the encoding
// and reads the header row.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	buf := bufio.NewReader(r)

	head, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	if len(head) == 0 {
		return nil, ErrEmptyFile
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
		head = head[3:]
	}
	if !utf8.Valid(head) {
		return nil, ErrInvalidEncoding
	}

	cr := csv.NewReader(buf)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	reader := &Reader{
		reader:    cr,
		headerMap: make(map[string]int),
		maxRows:   DefaultMaxRows,
	}
	for _, opt := range opts {
		opt(reader)
	}

	if err := reader.parseHeader(); err != nil {
		return nil, err
	}
	return reader, nil
}

func (r *Reader) parseHeader() error {
	record, err := r.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	r.headers = make([]string, len(record))
	for i, h := range record {
		header := strings.ToLower(strings.TrimSpace(h))
		r.headers[i] = header
		r.headerMap[header] = i
	}
	r.row = 1
	return nil
}

// Headers returns the lower-cased header names in file order.
func (r *Reader) Headers() []string {
	return r.headers
}

// HasHeader reports whether the file declares the given column.
func (r *Reader) HasHeader(name string) bool {
	_, ok := r.headerMap[name]
	return ok
}

// RequireHeaders returns the subset of names missing from the header row.
func (r *Reader) RequireHeaders(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !r.HasHeader(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Row is one data row keyed by header name. Line counts from 1 at the header,
// so the first data row is line 2, the same line a spreadsheet shows.
type Row struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of the named column, or "" when absent.
func (r *Row) Get(name string) string {
	return r.Fields[name]
}

// IsEmpty reports whether every field of the row is blank.
func (r *Row) IsEmpty() bool {
	for _, v := range r.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Next returns the next data row, io.EOF after the last one, or
// ErrTooManyRows once the row cap is exceeded. Malformed lines come back as a
// *csv.ParseError so callers can report the offending line.
func (r *Reader) Next() (*Row, error) {
	if r.row-1 >= r.maxRows {
		return nil, ErrTooManyRows
	}

	record, err := r.reader.Read()
	if err != nil {
		return nil, err
	}
	r.row++

	fields := make(map[string]string, len(r.headers))
	for i, header := range r.headers {
		if i < len(record) {
			fields[header] = strings.TrimSpace(record[i])
		} else {
			fields[header] = ""
		}
	}
	return &Row{Line: r.row, Fields: fields}, nil
}
