// Package submission finds and reads student prediction files.
package submission

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abhisek/fraudgrade/internal/csvtable"
)

// Column names read from a submission.
const (
	ColTransactionID = "TransactionID"
	ColIsFraud       = "IsFraud"
)

// ErrMissingIsFraud is returned by Load when the file has no IsFraud column.
var ErrMissingIsFraud = errors.New("submission missing IsFraud column")

// Label is one predicted row.
type Label struct {
	TransactionID string
	IsFraud       int
}

// Submission is one student's predictions, in file order.
type Submission struct {
	Path    string
	Student string
	Labels  []Label

	// HasID reports whether the file carried a TransactionID column.
	HasID bool
}

// Len returns the number of predicted rows.
func (s *Submission) Len() int {
	return len(s.Labels)
}

// Discover lists the CSV files in dir, skipping any whose base name contains
// answerKeyName. Paths are returned in lexical order.
func Discover(dir, answerKeyName string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if answerKeyName != "" && strings.Contains(filepath.Base(m), answerKeyName) {
			continue
		}
		paths = append(paths, m)
	}
	return paths, nil
}

// StudentFromPath derives the submitter id: the base file name up to the
// first underscore.
func StudentFromPath(path string) string {
	name, _, _ := strings.Cut(filepath.Base(path), "_")
	return name
}

// Load reads the submission at path.
func Load(path string) (*Submission, error) {
	tbl, err := csvtable.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromTable(path, tbl)
}

// FromTable builds a Submission from a parsed table. The student id is taken
// from path.
func FromTable(path string, tbl *csvtable.Table) (*Submission, error) {
	sub := &Submission{Path: path, Student: StudentFromPath(path)}

	labelCol, ok := tbl.Column(ColIsFraud)
	if !ok {
		return nil, fmt.Errorf("%s: %w", sub.Student, ErrMissingIsFraud)
	}
	idCol, hasID := tbl.Column(ColTransactionID)
	sub.HasID = hasID

	sub.Labels = make([]Label, 0, tbl.Len())
	for n, row := range tbl.Rows {
		v, err := csvtable.ParseBinary(row[labelCol])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %s: %w", sub.Student, n+2, ColIsFraud, err)
		}
		l := Label{IsFraud: v}
		if hasID {
			l.TransactionID = strings.TrimSpace(row[idCol])
		}
		sub.Labels = append(sub.Labels, l)
	}
	return sub, nil
}
