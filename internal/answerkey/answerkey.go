// Package answerkey loads the ground-truth fraud labels that submissions are
// graded against.
package answerkey

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/abhisek/fraudgrade/internal/csvtable"
)

// Column names expected in the answer key.
const (
	ColTransactionID   = "TransactionID"
	ColIsFraud         = "IsFraud"
	ColAmount          = "Amount"
	ColTransactionDate = "TransactionDate"
)

// Transaction is one ground-truth row.
type Transaction struct {
	ID      string
	IsFraud int
	Amount  float64
	Date    time.Time
}

// AnswerKey is the full ground truth, in file order.
type AnswerKey struct {
	Path         string
	Transactions []Transaction

	// HasID is false when the file carried no TransactionID column; such a
	// key can only be joined positionally.
	HasID bool

	// Err is set when the rows could not be read as transactions (a missing
	// column, a bad label, amount or date). The key still loads; every
	// submission graded against it is skipped with this error.
	Err error
}

// Len returns the number of transactions.
func (k *AnswerKey) Len() int {
	return len(k.Transactions)
}

// Load reads the answer key at path. Only a missing or unreadable file is an
// error; problems inside the rows are recorded in AnswerKey.Err.
func Load(path string) (*AnswerKey, error) {
	tbl, err := csvtable.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answer key: %w", err)
	}
	key := FromTable(tbl)
	key.Path = path
	return key, nil
}

// FromTable builds an AnswerKey from an already parsed CSV table.
func FromTable(tbl *csvtable.Table) *AnswerKey {
	_, hasID := tbl.Column(ColTransactionID)
	key := &AnswerKey{HasID: hasID}

	txs, err := transactions(tbl)
	if err != nil {
		key.Err = err
		return key
	}
	key.Transactions = txs
	return key
}

func transactions(tbl *csvtable.Table) ([]Transaction, error) {
	cols := make(map[string]int, 3)
	for _, name := range []string{ColIsFraud, ColAmount, ColTransactionDate} {
		i, ok := tbl.Column(name)
		if !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
		cols[name] = i
	}
	idCol, hasID := tbl.Column(ColTransactionID)

	txs := make([]Transaction, 0, tbl.Len())
	for n, row := range tbl.Rows {
		// Row numbers are 1-based and skip the header line.
		line := n + 2

		label, err := csvtable.ParseBinary(row[cols[ColIsFraud]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColIsFraud, err)
		}
		amount, err := parseAmount(row[cols[ColAmount]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColAmount, err)
		}
		date, err := ParseDate(row[cols[ColTransactionDate]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, ColTransactionDate, err)
		}

		tx := Transaction{IsFraud: label, Amount: amount, Date: date}
		if hasID {
			tx.ID = strings.TrimSpace(row[idCol])
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// ParseDate parses a transaction timestamp. Values without a zone are read
// as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q: %w", s, err)
	}
	return t.UTC(), nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q must be a finite number", s)
	}
	return v, nil
}
