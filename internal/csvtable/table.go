// Package csvtable reads small CSV files into a header-indexed table.
package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("no columns to parse from file")

const utf8BOM = "\ufeff"

// Table is a CSV file held in memory. Rows shorter than the header are
// padded with empty cells.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// ReadFile opens path and parses it as CSV.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Read parses r as CSV. The first record is the header.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := &Table{Header: header, index: make(map[string]int, len(header))}
	for i, name := range header {
		// First occurrence wins for duplicated column names.
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(rec) > len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(rec))
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ParseBinary parses a 0/1 label cell. Numeric forms such as "1.0" and the
// booleans true/false are accepted.
func ParseBinary(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing label")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		switch f {
		case 0:
			return 0, nil
		case 1:
			return 1, nil
		}
		return 0, fmt.Errorf("label %q is not 0 or 1", s)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("label %q is not 0 or 1", s)
}
