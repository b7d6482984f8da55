// Package areacode maps North American telephone area codes to a city and state.
package areacode

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed area_codes.csv
var defaultTable []byte

// Location is the city and state an area code is assigned to
type Location struct {
	City  string
	State string
}

// String renders the location as "City, ST". The separator is left out
// when either part is empty.
func (l Location) String() string {
	if l.City == "" || l.State == "" {
		return l.City + l.State
	}
	return l.City + ", " + l.State
}

// LoadError represents an unreadable or malformed area-code table
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("area code table %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("area code table %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Table is a static area-code lookup. It is read-only after loading.
type Table struct {
	entries map[string]Location
}

// Default returns the table built into the binary.
func Default() (*Table, error) {
	return parse("(embedded)", bytes.NewReader(defaultTable))
}

// LoadCSV loads a table from a CSV file with an "area_code,city,state" header.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	return parse(path, f)
}

func parse(source string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Source: source, Message: "file is empty"}
		}
		return nil, &LoadError{Source: source, Message: "failed to read header", Cause: err}
	}
	if !strings.EqualFold(strings.TrimSpace(header[0]), "area_code") {
		return nil, &LoadError{Source: source, Message: fmt.Sprintf("unexpected header %q", strings.Join(header, ","))}
	}

	entries := make(map[string]Location)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: source, Message: "failed to read row", Cause: err}
		}

		code := strings.TrimSpace(record[0])
		if code == "" {
			continue
		}
		entries[code] = Location{
			City:  strings.TrimSpace(record[1]),
			State: strings.TrimSpace(record[2]),
		}
	}

	return &Table{entries: entries}, nil
}

// Lookup returns the location for an area code. Empty or unknown codes are not found.
func (t *Table) Lookup(code string) (Location, bool) {
	if t == nil {
		return Location{}, false
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return Location{}, false
	}
	loc, ok := t.entries[code]
	return loc, ok
}
